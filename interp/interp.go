// Package interp precomputes, for every sub-ring point of a descriptor
// configuration, the four reference pixels of the enclosing 2x2 cell and
// their bilinear weights. A Table depends only on the sampling geometry, never
// on image data, so one table can be reused for any number of images.
package interp

import (
	"errors"
	"fmt"
	"math"

	"github.com/kovidgoyal/pgd/ring"
)

var _ = fmt.Print

// MaxSubringCount is the largest number of sub-ring points whose ordinal code
// fits in the widest supported output channel.
const MaxSubringCount = 64

var (
	ErrInvalidCount  = errors.New("interp: sub-ring point count must be between 1 and 64")
	ErrInvalidRadius = errors.New("interp: sub-ring radius must be a finite number greater than zero")
	ErrNoOffsets     = errors.New("interp: no ring points")
)

// Corner identifies one of the four reference pixels of a sub-ring point.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// Entry describes how to interpolate a single sub-ring point. Offsets are
// relative to the center pixel and indexed by Corner.
type Entry struct {
	DX, DY [4]int
	W      [4]float64
}

// Value interpolates the sub-ring point using at(dx, dy) to read the pixels.
func (e Entry) Value(at func(dx, dy int) float64) float64 {
	return float64(e.W[0]*at(e.DX[0], e.DY[0])) + float64(e.W[1]*at(e.DX[1], e.DY[1])) +
		float64(e.W[2]*at(e.DX[2], e.DY[2])) + float64(e.W[3]*at(e.DX[3], e.DY[3]))
}

// Table holds one Entry per (ring point, sub-ring point) pair in flat
// contiguous storage indexed by (i*SubringCount + j)*4 + corner.
type Table struct {
	RingCount, SubringCount int
	SubringRadius           float64

	dx, dy []int
	w      []float64
	extent int
}

// Position returns the offset of sub-ring point j of ring point i from the
// center pixel. The sub-ring is rotated by the ring angle on top of the ring
// point itself already lying at that angle, so the effective rotation of the
// sub-ring pattern is twice the ring angle.
func Position(offsets ring.Offsets, i, j, subringCount int, subringRadius float64) (x, y float64) {
	step_theta := 2 * math.Pi / float64(len(offsets))
	step_phi := 2 * math.Pi / float64(subringCount)
	theta := float64(i) * step_theta
	phi := theta + float64(j)*step_phi
	p := offsets[i]
	x = p.X + subringRadius*math.Sin(phi+theta)
	y = p.Y - subringRadius*math.Cos(phi+theta)
	return
}

// cell computes the enclosing cell and bilinear weights of a sub-sample
// position. When the position lies exactly on an integer coordinate of an
// axis, the far distance on that axis is forced to 1 so that the weight of
// the top-left corner is not zeroed by a zero width cell.
func cell(x, y float64) (e Entry) {
	x1, x2 := math.Floor(x), math.Ceil(x)
	y1, y2 := math.Floor(y), math.Ceil(y)
	dx1, dx2 := x-x1, x2-x
	dy1, dy2 := y-y1, y2-y
	if x1 == x2 {
		dx2 = 1
	}
	if y1 == y2 {
		dy2 = 1
	}
	ix1, ix2, iy1, iy2 := int(x1), int(x2), int(y1), int(y2)
	e.DX = [4]int{ix1, ix2, ix2, ix1}
	e.DY = [4]int{iy1, iy1, iy2, iy2}
	e.W = [4]float64{dx2 * dy2, dx1 * dy2, dx1 * dy1, dx2 * dy1}
	return
}

func validate_subring(offsets ring.Offsets, subringCount int, subringRadius float64) error {
	if len(offsets) == 0 {
		return ErrNoOffsets
	}
	if subringCount < 1 || subringCount > MaxSubringCount {
		return fmt.Errorf("%w: %d", ErrInvalidCount, subringCount)
	}
	if !ring.ValidRadius(subringRadius) {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, subringRadius)
	}
	return nil
}

// Build creates the interpolation table for the given ring points. offsets
// is only read.
func Build(offsets ring.Offsets, subringCount int, subringRadius float64) (*Table, error) {
	if err := validate_subring(offsets, subringCount, subringRadius); err != nil {
		return nil, err
	}
	n := len(offsets) * subringCount * 4
	t := &Table{
		RingCount: len(offsets), SubringCount: subringCount, SubringRadius: subringRadius,
		dx: make([]int, n), dy: make([]int, n), w: make([]float64, n),
	}
	for i := range offsets {
		for j := range subringCount {
			e := cell(Position(offsets, i, j, subringCount, subringRadius))
			base := (i*subringCount + j) * 4
			copy(t.dx[base:base+4], e.DX[:])
			copy(t.dy[base:base+4], e.DY[:])
			copy(t.w[base:base+4], e.W[:])
			for k := range 4 {
				t.extent = max(t.extent, abs(e.DX[k]), abs(e.DY[k]))
			}
		}
	}
	return t, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Entry returns the interpolation entry of sub-ring point j of ring point i.
func (t *Table) Entry(i, j int) (e Entry) {
	base := (i*t.SubringCount + j) * 4
	copy(e.DX[:], t.dx[base:base+4])
	copy(e.DY[:], t.dy[base:base+4])
	copy(e.W[:], t.w[base:base+4])
	return
}

// Extent is the largest absolute pixel offset any entry refers to. An image
// padded by at least Extent pixels on every side can be traversed without
// bounds checks failing.
func (t *Table) Extent() int { return t.extent }

// Len is the number of (ring point, sub-ring point, corner) triples.
func (t *Table) Len() int { return len(t.w) }

// Weights returns the flat weight storage. It must not be modified.
func (t *Table) Weights() []float64 { return t.w }

// Linear converts the flat offsets into index offsets into a row-major pixel
// buffer with the given stride.
func (t *Table) Linear(stride int) []int {
	ans := make([]int, len(t.dx))
	for i, dx := range t.dx {
		ans[i] = t.dy[i]*stride + dx
	}
	return ans
}
