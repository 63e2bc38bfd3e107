package types

import (
	"fmt"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	APNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"apng": APNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	APNG: "APNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	return formatNames[f]
}

// CanEncode reports whether images can be written in this format. WEBP is
// decode only.
func (f Format) CanEncode() bool {
	switch f {
	case JPEG, PNG, APNG, GIF, TIFF, BMP:
		return true
	}
	return false
}

// FormatFromDecoderName maps the name reported by image.Decode to a Format.
func FormatFromDecoderName(x string) Format {
	switch x {
	case "jpeg":
		return JPEG
	case "png", "apng":
		// the apng package registers itself for the PNG signature
		return PNG
	case "gif":
		return GIF
	case "tiff":
		return TIFF
	case "webp":
		return WEBP
	case "bmp":
		return BMP
	}
	return UNKNOWN
}
