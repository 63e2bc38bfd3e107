// Package histogram summarises descriptor buffers as spatial code histograms
// and compares them.
package histogram

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/steakknife/hamming"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var _ = fmt.Print

// MaxSubringCount is the largest code size that can be histogrammed, larger
// codes would need more than 65536 bins per cell.
const MaxSubringCount = 16

var (
	ErrTooManyBins    = errors.New("histogram: codes are too wide to histogram")
	ErrInvalidCells   = errors.New("histogram: invalid number of grid cells")
	ErrInvalidChannel = errors.New("histogram: channel out of range")
	ErrLengthMismatch = errors.New("histogram: vectors differ in length")
	ErrOutOfBounds    = errors.New("histogram: pixel outside the buffer")
)

// Bins returns the number of bins of one cell histogram of buf.
func Bins(buf *descriptor.Buffer) int { return 1 << buf.SubringCount }

// Grid divides the buffer into cells x cells regions and returns the
// histograms of the codes of channel ch in every region, concatenated in
// row-major order of the regions. Each region histogram is normalized to sum
// to 1. Region boundaries are spread so that every pixel belongs to exactly
// one region.
func Grid(buf *descriptor.Buffer, ch, cells int) ([]float64, error) {
	if buf.SubringCount > MaxSubringCount {
		return nil, fmt.Errorf("%w: %d bits", ErrTooManyBins, buf.SubringCount)
	}
	if ch < 0 || ch >= buf.Channels {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	if cells < 1 || cells > buf.Rows || cells > buf.Cols {
		return nil, fmt.Errorf("%w: %d for a %dx%d buffer", ErrInvalidCells, cells, buf.Cols, buf.Rows)
	}
	bins := Bins(buf)
	ans := make([]float64, cells*cells*bins)
	for i := range cells {
		r0, r1 := i*buf.Rows/cells, (i+1)*buf.Rows/cells
		for j := range cells {
			c0, c1 := j*buf.Cols/cells, (j+1)*buf.Cols/cells
			h := ans[(i*cells+j)*bins : (i*cells+j+1)*bins]
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					h[buf.At(r, c, ch)]++
				}
			}
			floats.Scale(1/float64((r1-r0)*(c1-c0)), h)
		}
	}
	return ans, nil
}

// Cosine returns the cosine similarity of a and b, 0 when either is all zero.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return floats.Dot(a, b) / (na * nb), nil
}

// Entropy returns the Shannon entropy, in nats, of the distribution
// proportional to h.
func Entropy(h []float64) float64 {
	total := floats.Sum(h)
	if total <= 0 {
		return 0
	}
	p := make([]float64, len(h))
	floats.ScaleTo(p, 1/total, h)
	return stat.Entropy(p)
}

// Hamming returns the number of differing code bits, summed over all
// channels, between the descriptors of pixels (r1, c1) and (r2, c2).
func Hamming(buf *descriptor.Buffer, r1, c1, r2, c2 int) (int, error) {
	in := func(r, c int) bool { return r >= 0 && r < buf.Rows && c >= 0 && c < buf.Cols }
	if !in(r1, c1) || !in(r2, c2) {
		return 0, fmt.Errorf("%w: (%d, %d) or (%d, %d) in %dx%d", ErrOutOfBounds, r1, c1, r2, c2, buf.Rows, buf.Cols)
	}
	dist := 0
	for ch := range buf.Channels {
		dist += hamming.Uint64(buf.At(r1, c1, ch), buf.At(r2, c2, ch))
	}
	return dist, nil
}

// NeighbourHamming returns the mean Hamming distance between the descriptors
// of horizontally adjacent pixels, 0 for buffers less than two pixels wide.
func NeighbourHamming(buf *descriptor.Buffer) (float64, error) {
	if buf.Cols < 2 || buf.Rows < 1 {
		return 0, nil
	}
	dists := make([]float64, 0, buf.Rows*(buf.Cols-1))
	for r := range buf.Rows {
		for c := 1; c < buf.Cols; c++ {
			d, err := Hamming(buf, r, c-1, r, c)
			if err != nil {
				return 0, err
			}
			dists = append(dists, float64(d))
		}
	}
	return stat.Mean(dists, nil), nil
}
