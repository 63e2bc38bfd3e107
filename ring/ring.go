// Package ring generates the offsets of the ring points sampled around
// every pixel.
package ring

import (
	"errors"
	"fmt"
	"math"
)

var _ = fmt.Print

var (
	ErrInvalidCount  = errors.New("ring: point count must be a positive multiple of 4")
	ErrInvalidRadius = errors.New("ring: radius must be a finite number greater than zero")
)

// Point is an offset from the center pixel. X grows to the right and Y grows
// downwards, as in image coordinates.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Offsets holds one Point per ring point, in clockwise order starting from
// the point directly above the center.
type Offsets []Point

// Radius returns the distance of the ring points from the center.
func (o Offsets) Radius() float64 {
	if len(o) == 0 {
		return 0
	}
	// point 0 is snapped onto the y axis so this is exact
	return math.Abs(o[0].Y)
}

// Angle returns the clockwise angle from "up" of ring point i.
func (o Offsets) Angle(i int) float64 {
	return float64(i) * 2 * math.Pi / float64(len(o))
}

func ValidRadius(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// Generate returns count points placed on a circle of the given radius. The
// points lying on the cardinal axes have their axis coordinate forced to
// exactly zero.
func Generate(count int, radius float64) (Offsets, error) {
	if count < 4 || count%4 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if !ValidRadius(radius) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	ans := make(Offsets, count)
	quarter := count / 4
	for i := range ans {
		theta := float64(i) * 2 * math.Pi / float64(count)
		p := Point{X: radius * math.Sin(theta), Y: -radius * math.Cos(theta)}
		if i%quarter == 0 {
			switch i / quarter {
			case 0, 2:
				p.X = 0
			case 1, 3:
				p.Y = 0
			}
		}
		ans[i] = p
	}
	return ans, nil
}
