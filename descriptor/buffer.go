// Package descriptor holds the packed output of a PGD computation: one
// ordinal code per (pixel, ring point), stored in the narrowest unsigned
// integer type that can hold a code of the configured sub-ring point count.
package descriptor

import (
	"errors"
	"fmt"
	"image"
	"math/bits"
)

var _ = fmt.Print

var (
	ErrUnsupportedWidth = errors.New("descriptor: no packed representation wide enough for the sub-ring point count")
	ErrInvalidShape     = errors.New("descriptor: invalid buffer shape")
	ErrWidthMismatch    = errors.New("descriptor: accessor width does not match buffer width")
)

// Width is the size in bytes of a single channel value.
type Width int

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

func (w Width) Bits() int { return 8 * int(w) }

func (w Width) String() string {
	switch w {
	case Width8, Width16, Width32, Width64:
		return fmt.Sprintf("uint%d", w.Bits())
	}
	return fmt.Sprintf("Width(%d)", int(w))
}

// WidthFor returns the smallest width whose bit count is at least
// subringCount.
func WidthFor(subringCount int) (Width, error) {
	if subringCount < 1 {
		return 0, fmt.Errorf("%w: %d sub-ring points", ErrInvalidShape, subringCount)
	}
	for _, w := range [...]Width{Width8, Width16, Width32, Width64} {
		if w.Bits() >= subringCount {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %d bits needed, at most 64 available", ErrUnsupportedWidth, subringCount)
}

// Code is the set of element types a Buffer can be backed by.
type Code interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Buffer is a rows x cols x channels array of ordinal codes in row-major
// order. Exactly one of the typed backing slices is non-nil, matching Width.
type Buffer struct {
	Rows, Cols, Channels int
	// SubringCount is the number of meaningful low bits in every code.
	SubringCount int
	Width        Width

	u8  []uint8
	u16 []uint16
	u32 []uint32
	u64 []uint64
}

// Allocate creates a zeroed buffer sized for an image of rows x cols pixels.
func Allocate(rows, cols, channels, subringCount int) (*Buffer, error) {
	if rows < 0 || cols < 0 || channels < 1 {
		return nil, fmt.Errorf("%w: %dx%d pixels with %d channels", ErrInvalidShape, rows, cols, channels)
	}
	w, err := WidthFor(subringCount)
	if err != nil {
		return nil, err
	}
	b := &Buffer{Rows: rows, Cols: cols, Channels: channels, SubringCount: subringCount, Width: w}
	n := rows * cols * channels
	switch w {
	case Width8:
		b.u8 = make([]uint8, n)
	case Width16:
		b.u16 = make([]uint16, n)
	case Width32:
		b.u32 = make([]uint32, n)
	case Width64:
		b.u64 = make([]uint64, n)
	}
	return b, nil
}

// Index returns the position of channel ch of pixel (row, col) in the
// backing slice.
func (b *Buffer) Index(row, col, ch int) int {
	return (row*b.Cols+col)*b.Channels + ch
}

func (b *Buffer) Len() int { return b.Rows * b.Cols * b.Channels }

// Set stores code, truncated to the buffer width.
func (b *Buffer) Set(row, col, ch int, code uint64) {
	i := b.Index(row, col, ch)
	switch b.Width {
	case Width8:
		b.u8[i] = uint8(code)
	case Width16:
		b.u16[i] = uint16(code)
	case Width32:
		b.u32[i] = uint32(code)
	case Width64:
		b.u64[i] = code
	}
}

// At returns the code of ring point ch at pixel (row, col) widened to 64 bits.
func (b *Buffer) At(row, col, ch int) uint64 {
	i := b.Index(row, col, ch)
	switch b.Width {
	case Width8:
		return uint64(b.u8[i])
	case Width16:
		return uint64(b.u16[i])
	case Width32:
		return uint64(b.u32[i])
	case Width64:
		return b.u64[i]
	}
	return 0
}

// Codes returns the codes of all ring points at pixel (row, col).
func (b *Buffer) Codes(row, col int) []uint64 {
	ans := make([]uint64, b.Channels)
	for ch := range ans {
		ans[ch] = b.At(row, col, ch)
	}
	return ans
}

func (b *Buffer) check_width(w Width) error {
	if b.Width != w {
		return fmt.Errorf("%w: buffer is %s, asked for %s", ErrWidthMismatch, b.Width, w)
	}
	return nil
}

func (b *Buffer) Uint8At(row, col, ch int) (uint8, error) {
	if err := b.check_width(Width8); err != nil {
		return 0, err
	}
	return b.u8[b.Index(row, col, ch)], nil
}

func (b *Buffer) Uint16At(row, col, ch int) (uint16, error) {
	if err := b.check_width(Width16); err != nil {
		return 0, err
	}
	return b.u16[b.Index(row, col, ch)], nil
}

func (b *Buffer) Uint32At(row, col, ch int) (uint32, error) {
	if err := b.check_width(Width32); err != nil {
		return 0, err
	}
	return b.u32[b.Index(row, col, ch)], nil
}

func (b *Buffer) Uint64At(row, col, ch int) (uint64, error) {
	if err := b.check_width(Width64); err != nil {
		return 0, err
	}
	return b.u64[b.Index(row, col, ch)], nil
}

// Slice returns the typed backing storage of b. It fails when T does not
// match the buffer width.
func Slice[T Code](b *Buffer) ([]T, error) {
	var ans any
	var z T
	switch any(z).(type) {
	case uint8:
		ans = b.u8
	case uint16:
		ans = b.u16
	case uint32:
		ans = b.u32
	case uint64:
		ans = b.u64
	}
	s, ok := ans.([]T)
	if !ok || (s == nil && b.Len() > 0) {
		return nil, fmt.Errorf("%w: buffer is %s, asked for %T", ErrWidthMismatch, b.Width, z)
	}
	return s, nil
}

// Equal reports whether both buffers have the same shape and contents.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Rows != o.Rows || b.Cols != o.Cols || b.Channels != o.Channels || b.Width != o.Width || b.SubringCount != o.SubringCount {
		return false
	}
	switch b.Width {
	case Width8:
		return equal(b.u8, o.u8)
	case Width16:
		return equal(b.u16, o.u16)
	case Width32:
		return equal(b.u32, o.u32)
	case Width64:
		return equal(b.u64, o.u64)
	}
	return true
}

func equal[T Code](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i, x := range a {
		if b[i] != x {
			return false
		}
	}
	return true
}

// ChannelImage renders the codes of ring point ch as a 16-bit grayscale
// image, scaling the SubringCount bit codes to the full 16-bit range.
func (b *Buffer) ChannelImage(ch int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, b.Cols, b.Rows))
	n := uint(b.SubringCount)
	var scale func(uint64) uint16
	switch {
	case n > 16:
		scale = func(c uint64) uint16 { return uint16(c >> (n - 16)) }
	case n == 16:
		scale = func(c uint64) uint16 { return uint16(c) }
	default:
		maxval := uint64(1)<<n - 1
		scale = func(c uint64) uint16 { return uint16(c * 0xffff / maxval) }
	}
	for y := range b.Rows {
		row := img.Pix[y*img.Stride:]
		for x := range b.Cols {
			v := scale(b.At(y, x, ch))
			row[2*x] = uint8(v >> 8)
			row[2*x+1] = uint8(v)
		}
	}
	return img
}

// OnesCount returns the number of set bits in the code of ring point ch at
// pixel (row, col).
func (b *Buffer) OnesCount(row, col, ch int) int {
	return bits.OnesCount64(b.At(row, col, ch))
}
