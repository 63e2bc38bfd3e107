// Package border pads images by replicating their edge pixels outward so that
// sampling around any pixel of the original image never reads out of bounds.
package border

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/kovidgoyal/pgd/gray"
)

var _ = fmt.Print

var (
	ErrEmptyImage    = errors.New("border: cannot pad an empty image")
	ErrInvalidRadius = errors.New("border: pad amount must not be negative")
)

// Padded is a copy of a source image with R replicated pixels on every side.
// Pixel (row, col) of the source is at (row+R, col+R) of Image.
type Padded struct {
	Image *gray.Float
	// R is the number of pixels added on every side.
	R int
	// Rows and Cols are the dimensions of the source image.
	Rows, Cols int
}

// RadiusFor returns the pad amount needed for ring points at ringRadius
// with sub-ring points at subringRadius around them: the rounded up sum of
// both plus one pixel of safety margin for floating point error in the
// sampling positions.
func RadiusFor(ringRadius, subringRadius float64) int {
	return int(math.Ceil(ringRadius+subringRadius)) + 1
}

// Pad returns a copy of src with r pixels replicated from the nearest edge
// pixel on every side.
func Pad(src *gray.Float, r int) (*Padded, error) {
	if src.Empty() {
		return nil, ErrEmptyImage
	}
	if r < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, r)
	}
	rows, cols := src.Rows(), src.Cols()
	dst := gray.NewFloat(image.Rect(0, 0, cols+2*r, rows+2*r))
	for y := range dst.Rect.Dy() {
		srow := src.Row(clamp(y-r, rows))
		drow := dst.Row(y)
		left, right := drow[:r], drow[r+cols:]
		copy(drow[r:r+cols], srow)
		for i := range left {
			left[i] = srow[0]
		}
		for i := range right {
			right[i] = srow[cols-1]
		}
	}
	return &Padded{Image: dst, R: r, Rows: rows, Cols: cols}, nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Stride is the number of elements between vertically adjacent pixels.
func (p *Padded) Stride() int { return p.Image.Stride }

// Center returns the index into Image.Pix of source pixel (row, col).
func (p *Padded) Center(row, col int) int {
	return (row+p.R)*p.Image.Stride + col + p.R
}

// Source returns the value of source pixel (row, col) offset by (dx, dy),
// as seen through the replicated border. It panics if the offset reaches
// beyond the pad.
func (p *Padded) Source(row, col, dx, dy int) float64 {
	if dx < -p.R || dx > p.R || dy < -p.R || dy > p.R {
		panic(fmt.Sprintf("offset (%d, %d) is outside the padded border of %d pixels", dx, dy, p.R))
	}
	return p.Image.Pix[p.Center(row, col)+dy*p.Image.Stride+dx]
}
