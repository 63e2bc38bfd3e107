package gray

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/pgd/colorconv"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func ramp(w, h int) *Float {
	f := NewFloat(image.Rect(0, 0, w, h))
	for i := range f.Pix {
		f.Pix[i] = float64(i)
	}
	return f
}

func TestFloat(t *testing.T) {
	f := NewFloat(image.Rect(-1, -1, 3, 2))
	require.Equal(t, 3, f.Rows())
	require.Equal(t, 4, f.Cols())
	f.SetFloat(2, 1, 0.5)
	require.Equal(t, 0.5, f.FloatAt(2, 1))
	require.Equal(t, 0.0, f.FloatAt(3, 1), "out of bounds reads are zero")
	f.Set(0, 0, color.White)
	require.Equal(t, 1.0, f.FloatAt(0, 0))
	require.Equal(t, color.Gray16{Y: 0xffff}, f.At(0, 0))
	sub := f.SubImage(image.Rect(0, 0, 3, 2)).(*Float)
	require.Equal(t, 0.5, sub.FloatAt(2, 1))
	c := sub.Clone()
	require.Equal(t, image.Rect(0, 0, 3, 2), c.Bounds())
	require.Equal(t, []float64{1, 0, 0}, c.Row(0))
	require.Equal(t, []float64{0, 0, 0.5}, c.Row(1))
	require.True(t, (&Float{}).Empty())

	_, err := NewFloatWithPixels(make([]float64, 5), 2, 3)
	require.Error(t, err)
	g, err := NewFloatWithPixels([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 6.0, g.FloatAt(1, 2))
}

func TestFromImage(t *testing.T) {
	r := image.Rect(2, 3, 5, 3+2*runtime.GOMAXPROCS(0))
	g := image.NewGray(r)
	nrgba := image.NewNRGBA(r)
	rgba := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint8(10*x + y)
			g.SetGray(x, y, color.Gray{Y: v})
			nrgba.SetNRGBA(x, y, color.NRGBA{v, v, v, 0xff})
			rgba.SetRGBA(x, y, color.RGBA{v, v, v, 0xff})
		}
	}
	expected := NewFloat(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := range r.Dy() {
		for x := range r.Dx() {
			expected.Pix[y*expected.Stride+x] = float64(uint8(10*(x+r.Min.X)+y+r.Min.Y)) / 255
		}
	}
	approx := cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })
	for _, src := range []image.Image{g, nrgba, rgba} {
		t.Run(fmt.Sprintf("%T", src), func(t *testing.T) {
			f, err := FromImage(src)
			require.NoError(t, err)
			if diff := cmp.Diff(expected.Pix, f.Pix, approx); diff != "" {
				t.Fatalf("unexpected conversion:\n%s", diff)
			}
		})
	}

	c := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	c.SetNRGBA(0, 0, color.NRGBA{0xff, 0, 0, 0xff})
	f, err := FromImage(c)
	require.NoError(t, err)
	require.InDelta(t, 0.299, f.Pix[0], 1e-12)
	f, err = FromImage(c, WithStandard(colorconv.Rec709), WithProcs(1))
	require.NoError(t, err)
	require.InDelta(t, 0.2126, f.Pix[0], 1e-12)

	f, err = FromImage(image.NewGray(image.Rect(0, 0, 0, 4)))
	require.NoError(t, err)
	require.True(t, f.Empty())
}

func TestTransforms(t *testing.T) {
	// 0 1 2
	// 3 4 5
	src := ramp(3, 2)
	for _, tc := range []struct {
		name string
		fn   func(*Float) *Float
		w, h int
		want []float64
	}{
		{"FlipH", FlipH, 3, 2, []float64{2, 1, 0, 5, 4, 3}},
		{"FlipV", FlipV, 3, 2, []float64{3, 4, 5, 0, 1, 2}},
		{"Rotate90", Rotate90, 2, 3, []float64{2, 5, 1, 4, 0, 3}},
		{"Rotate180", Rotate180, 3, 2, []float64{5, 4, 3, 2, 1, 0}},
		{"Rotate270", Rotate270, 2, 3, []float64{3, 0, 4, 1, 5, 2}},
		{"Transpose", Transpose, 2, 3, []float64{0, 3, 1, 4, 2, 5}},
		{"Transverse", Transverse, 2, 3, []float64{5, 2, 4, 1, 3, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.fn(src)
			require.Equal(t, image.Rect(0, 0, tc.w, tc.h), d.Bounds())
			require.Equal(t, tc.want, d.Pix)
		})
	}
}
