package gray

import (
	"fmt"
	"image"
	"math"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/pgd/colorconv"
)

var _ = fmt.Print

type convertConfig struct {
	standard colorconv.Standard
	linear   bool
	procs    int
}

// ConvertOption sets an optional parameter for FromImage.
type ConvertOption func(*convertConfig)

// WithStandard selects the luma coefficients. Defaults to Rec. 601.
func WithStandard(s colorconv.Standard) ConvertOption {
	return func(c *convertConfig) { c.standard = s }
}

// WithLinearLight removes the sRGB transfer function before computing luma.
func WithLinearLight(enabled bool) ConvertOption {
	return func(c *convertConfig) { c.linear = enabled }
}

// WithProcs sets the number of goroutines used for the conversion. Zero, the
// default, uses GOMAXPROCS.
func WithProcs(n int) ConvertOption {
	return func(c *convertConfig) { c.procs = n }
}

// FromImage reduces img to a single channel of luminance values in [0, 1]. A
// *Float is returned as a contiguous copy. The result always has its origin
// at (0, 0).
func FromImage(image_any image.Image, opts ...ConvertOption) (ans *Float, err error) {
	cfg := convertConfig{standard: colorconv.Rec601}
	for _, o := range opts {
		o(&cfg)
	}
	b := image_any.Bounds()
	width, height := b.Dx(), b.Dy()
	ans = NewFloat(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return ans, nil
	}
	luma := cfg.standard.Luma
	if cfg.linear {
		luma = cfg.standard.LinearLuma
	}
	identity := func(v float64) float64 { return v }
	transfer := identity
	if cfg.linear {
		transfer = colorconv.SRGBToLinear
	}
	var f func(start, limit int)
	switch img := image_any.(type) {
	case *Float:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				copy(ans.Row(y), img.Row(y))
			}
		}
	case *image.Gray:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[width-1]
				drow := ans.Row(y)
				for x := range drow {
					drow[x] = transfer(float64(row[x]) / math.MaxUint8)
				}
			}
		}
	case *image.Gray16:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[2*(width-1)+1]
				drow := ans.Row(y)
				for x := range drow {
					drow[x] = transfer(float64(uint16(row[2*x])<<8|uint16(row[2*x+1])) / math.MaxUint16)
				}
			}
		}
	case *image.NRGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				drow := ans.Row(y)
				for x := range drow {
					s := row[4*x : 4*x+3 : 4*x+3]
					drow[x] = luma(float64(s[0])/math.MaxUint8, float64(s[1])/math.MaxUint8, float64(s[2])/math.MaxUint8)
				}
			}
		}
	case *image.YCbCr:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				drow := ans.Row(y)
				for x := range drow {
					if cfg.standard == colorconv.Rec601 && !cfg.linear {
						// the JFIF Y channel already is Rec. 601 luma
						drow[x] = float64(img.Y[img.YOffset(x+b.Min.X, y+b.Min.Y)]) / math.MaxUint8
					} else {
						r, g, bl, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
						drow[x] = luma(float64(r)/math.MaxUint16, float64(g)/math.MaxUint16, float64(bl)/math.MaxUint16)
					}
				}
			}
		}
	default:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				drow := ans.Row(y)
				for x := range drow {
					r, g, bl, a := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
					if a != 0 && a != 0xffff {
						r, g, bl = (r*0xffff)/a, (g*0xffff)/a, (bl*0xffff)/a
					}
					drow[x] = luma(float64(r)/math.MaxUint16, float64(g)/math.MaxUint16, float64(bl)/math.MaxUint16)
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(cfg.procs, f, 0, height)
	return
}
