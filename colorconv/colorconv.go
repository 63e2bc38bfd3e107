package colorconv

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// This package reduces RGB colors to a single luminance value. Inputs and
// outputs are normalised to [0,1]. Two sets of coefficients are provided:
// Rec. 601 (the classic "BGR to gray" weights used by most image processing
// libraries) and Rec. 709 (HDTV primaries). Optionally the sRGB transfer
// function can be removed before weighting so that luminance is computed on
// linear light.

type Vec3 [3]float64

// Standard selects a set of luma coefficients.
type Standard int

const (
	Rec601 Standard = iota
	Rec709
)

var coefficients = map[Standard]Vec3{
	Rec601: {0.299, 0.587, 0.114},
	Rec709: {0.2126, 0.7152, 0.0722},
}

func (s Standard) String() string {
	switch s {
	case Rec601:
		return "Rec601"
	case Rec709:
		return "Rec709"
	}
	return fmt.Sprintf("Standard(%d)", int(s))
}

// Coefficients returns the R, G, B weights of s. Unknown standards fall back
// to Rec. 601.
func (s Standard) Coefficients() Vec3 {
	if c, ok := coefficients[s]; ok {
		return c
	}
	return coefficients[Rec601]
}

// Luma returns the weighted sum of the gamma encoded components.
func (s Standard) Luma(r, g, b float64) float64 {
	c := s.Coefficients()
	return clamp01(c[0]*r + c[1]*g + c[2]*b)
}

// LinearLuma removes the sRGB companding before weighting.
func (s Standard) LinearLuma(r, g, b float64) float64 {
	return s.Luma(SRGBToLinear(r), SRGBToLinear(g), SRGBToLinear(b))
}

// Luma8 is a convenience wrapper for 8 bit components.
func (s Standard) Luma8(r, g, b uint8) float64 {
	return s.Luma(float64(r)/math.MaxUint8, float64(g)/math.MaxUint8, float64(b)/math.MaxUint8)
}

// Luma16 is a convenience wrapper for 16 bit components.
func (s Standard) Luma16(r, g, b uint32) float64 {
	return s.Luma(float64(r)/math.MaxUint16, float64(g)/math.MaxUint16, float64(b)/math.MaxUint16)
}

// SRGBToLinear undoes the sRGB transfer function.
func SRGBToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB transfer function.
func LinearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
