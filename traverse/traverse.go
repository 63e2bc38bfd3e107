// Package traverse computes the ordinal codes of every pixel of a padded
// image and stores them in a descriptor buffer.
//
// For each pixel and ring point, the sub-ring samples v[0..n) are obtained
// and bit l of the code is set when v[l] > v[(l+1)%n]. Ties produce a zero
// bit, so a flat neighbourhood yields a zero code.
package traverse

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/pgd/border"
	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/interp"
)

var _ = fmt.Print

var (
	ErrShapeMismatch = errors.New("traverse: buffer shape does not match source and table")
	ErrPadTooSmall   = errors.New("traverse: source border is smaller than the sampling extent")
)

func check_shape(src *border.Padded, dst *descriptor.Buffer, rings, subrings, extent int) error {
	if dst.Rows != src.Rows || dst.Cols != src.Cols {
		return fmt.Errorf("%w: buffer is %dx%d, source is %dx%d", ErrShapeMismatch, dst.Rows, dst.Cols, src.Rows, src.Cols)
	}
	if dst.Channels != rings || dst.SubringCount != subrings {
		return fmt.Errorf("%w: buffer has %d channels of %d bit codes, table has %d ring points of %d sub-ring points",
			ErrShapeMismatch, dst.Channels, dst.SubringCount, rings, subrings)
	}
	if extent > src.R {
		return fmt.Errorf("%w: %d > %d", ErrPadTooSmall, extent, src.R)
	}
	return nil
}

// run executes f over the rows [0, rows). workers == 1 runs f on the calling
// goroutine, workers < 1 uses GOMAXPROCS goroutines.
func run(workers, rows int, f func(start, limit int)) error {
	if rows == 0 {
		return nil
	}
	if workers == 1 {
		f(0, rows)
		return nil
	}
	return parallel.Run_in_parallel_over_range(max(0, workers), f, 0, rows)
}

// Interpolated computes the codes using bilinear interpolation of every
// sub-ring point, as described by t.
func Interpolated(src *border.Padded, t *interp.Table, dst *descriptor.Buffer, workers int) error {
	if err := check_shape(src, dst, t.RingCount, t.SubringCount, t.Extent()); err != nil {
		return err
	}
	// the store width is resolved here, once, rather than per pixel
	switch dst.Width {
	case descriptor.Width8:
		return interpolated[uint8](dst, src, t, workers)
	case descriptor.Width16:
		return interpolated[uint16](dst, src, t, workers)
	case descriptor.Width32:
		return interpolated[uint32](dst, src, t, workers)
	case descriptor.Width64:
		return interpolated[uint64](dst, src, t, workers)
	}
	return fmt.Errorf("%w: %s", descriptor.ErrUnsupportedWidth, dst.Width)
}

func interpolated[T descriptor.Code](buf *descriptor.Buffer, src *border.Padded, t *interp.Table, workers int) error {
	dst, err := descriptor.Slice[T](buf)
	if err != nil {
		return err
	}
	pix := src.Image.Pix
	lin := t.Linear(src.Stride())
	w := t.Weights()
	rings, subrings, cols := t.RingCount, t.SubringCount, src.Cols
	per_ring := subrings * 4
	f := func(start, limit int) {
		values := make([]float64, subrings+1)
		for row := start; row < limit; row++ {
			center := src.Center(row, 0)
			out := dst[row*cols*rings : (row+1)*cols*rings]
			for col := range cols {
				for k := range rings {
					lk, wk := lin[k*per_ring:(k+1)*per_ring], w[k*per_ring:(k+1)*per_ring]
					for l := range subrings {
						e := l * 4
						// explicit conversions prevent fused multiply-add so
						// that results do not depend on the architecture
						values[l] = float64(wk[e]*pix[center+lk[e]]) + float64(wk[e+1]*pix[center+lk[e+1]]) +
							float64(wk[e+2]*pix[center+lk[e+2]]) + float64(wk[e+3]*pix[center+lk[e+3]])
					}
					values[subrings] = values[0]
					out[col*rings+k] = T(ordinal_code(values))
				}
				center++
			}
		}
	}
	return run(workers, src.Rows, f)
}

// ordinal_code expects the first sample repeated at the end of values.
func ordinal_code(values []float64) (code uint64) {
	for l := range len(values) - 1 {
		if values[l] > values[l+1] {
			code |= 1 << l
		}
	}
	return
}

// Nearest is the 4x4 fast path: every sub-ring point is read from a single
// pixel instead of being interpolated.
func Nearest(src *border.Padded, n *interp.Nearest, dst *descriptor.Buffer, workers int) error {
	const count = 4
	if err := check_shape(src, dst, count, count, n.Extent()); err != nil {
		return err
	}
	out, err := descriptor.Slice[uint8](dst)
	if err != nil {
		return err
	}
	pix := src.Image.Pix
	lin := n.Linear(src.Stride())
	cols := src.Cols
	f := func(start, limit int) {
		var values [count + 1]float64
		for row := start; row < limit; row++ {
			center := src.Center(row, 0)
			orow := out[row*cols*count : (row+1)*cols*count]
			for col := range cols {
				for k := range count {
					for l := range count {
						values[l] = pix[center+lin[k*count+l]]
					}
					values[count] = values[0]
					orow[col*count+k] = uint8(ordinal_code(values[:]))
				}
				center++
			}
		}
	}
	return run(workers, src.Rows, f)
}
