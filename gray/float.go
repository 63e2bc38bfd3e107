// Package gray provides a single channel, floating point image type along
// with conversion from arbitrary images by luminance.
package gray

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

var _ = fmt.Print

// Float is an in-memory image of float64 intensities, normally in the range
// [0, 1].
type Float struct {
	// Pix holds the image's pixels. The pixel at (x, y) is at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)].
	Pix []float64
	// Stride is the Pix stride (in elements) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func NewFloat(r image.Rectangle) *Float {
	return &Float{
		Pix:    make([]float64, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

// NewFloatWithPixels wraps p, which must contain width*height values in
// row-major order.
func NewFloatWithPixels(p []float64, width, height int) (*Float, error) {
	if expected := width * height; expected != len(p) || width < 0 || height < 0 {
		return nil, fmt.Errorf("the image width and height dont match the size of the specified pixel data: width=%d height=%d sz=%d != %d", width, height, len(p), expected)
	}
	return &Float{Pix: p, Stride: width, Rect: image.Rect(0, 0, width, height)}, nil
}

func (p *Float) ColorModel() color.Model { return color.Gray16Model }

func (p *Float) Bounds() image.Rectangle { return p.Rect }

// Rows and Cols are the image height and width.
func (p *Float) Rows() int { return p.Rect.Dy() }
func (p *Float) Cols() int { return p.Rect.Dx() }

func (p *Float) Empty() bool { return p == nil || p.Rect.Empty() }

func (p *Float) At(x, y int) color.Color {
	return color.Gray16{Y: to16(p.FloatAt(x, y))}
}

func to16(v float64) uint16 {
	return uint16(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint16))
}

func (p *Float) FloatAt(x, y int) float64 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

// PixOffset returns the index of the element of Pix that corresponds to
// the pixel at (x, y).
func (p *Float) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *Float) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	g := color.Gray16Model.Convert(c).(color.Gray16)
	p.Pix[p.PixOffset(x, y)] = float64(g.Y) / math.MaxUint16
}

func (p *Float) SetFloat(x, y int, v float64) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = v
}

// Row returns the pixels of row y, relative to Rect.Min.Y.
func (p *Float) Row(y int) []float64 {
	start := y * p.Stride
	return p.Pix[start : start+p.Rect.Dx() : start+p.Rect.Dx()]
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *Float) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Float{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Float{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *Float) Opaque() bool { return true }

// Clone returns a copy of p with contiguous pixels and its origin at (0, 0).
func (p *Float) Clone() *Float {
	ans := NewFloat(image.Rect(0, 0, p.Rect.Dx(), p.Rect.Dy()))
	for y := range ans.Rect.Dy() {
		copy(ans.Row(y), p.Row(y))
	}
	return ans
}
