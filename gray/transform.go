package gray

import (
	"image"
)

// The transforms below return new images with their origin at (0, 0). They
// are used to apply EXIF orientation after decoding.

func transformed(src *Float, width, height int, dest func(x, y int) (int, int)) *Float {
	dst := NewFloat(image.Rect(0, 0, width, height))
	for y := range src.Rect.Dy() {
		row := src.Row(y)
		for x, v := range row {
			dx, dy := dest(x, y)
			dst.Pix[dy*dst.Stride+dx] = v
		}
	}
	return dst
}

// FlipH flips the image horizontally (from left to right).
func FlipH(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
}

// FlipV flips the image vertically (from top to bottom).
func FlipV(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, h, w, func(x, y int) (int, int) { return y, w - 1 - x })
}

// Rotate180 rotates the image 180 degrees counter-clockwise.
func Rotate180(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
}

// Rotate270 rotates the image 270 degrees counter-clockwise.
func Rotate270(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, h, w, func(x, y int) (int, int) { return h - 1 - y, x })
}

// Transpose flips the image horizontally and rotates 90 degrees counter-clockwise.
func Transpose(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, h, w, func(x, y int) (int, int) { return y, x })
}

// Transverse flips the image vertically and rotates 90 degrees counter-clockwise.
func Transverse(src *Float) *Float {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return transformed(src, h, w, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
}
