package pgd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/pgd/colorconv"
	"github.com/kovidgoyal/pgd/gray"
	"github.com/kovidgoyal/pgd/types"

	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

type decodeConfig struct {
	autoOrientation bool
	standard        colorconv.Standard
	linearLight     bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
	standard:        colorconv.Rec601,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Luma returns a DecodeOption that selects the coefficients used to reduce
// color images to a single channel. Defaults to Rec. 601.
func Luma(s colorconv.Standard) DecodeOption {
	return func(c *decodeConfig) {
		c.standard = s
	}
}

// LinearLight returns a DecodeOption that removes the sRGB transfer function
// before computing luma. Disabled by default.
func LinearLight(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.linearLight = enabled
	}
}

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified = 0
	orientationNormal      = 1
	orientationFlipH       = 2
	orientationRotate180   = 3
	orientationFlipV       = 4
	orientationTranspose   = 5
	orientationRotate270   = 6
	orientationTransverse  = 7
	orientationRotate90    = 8
)

// read_orientation returns the EXIF orientation flag of the image in data,
// orientationUnspecified when there is none.
func read_orientation(data []byte) orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return orientationUnspecified
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Format() != exif_tiff.IntVal {
		return orientationUnspecified
	}
	if v, err := tag.Int(0); err == nil && v > 0 && v < 9 {
		return orientation(v)
	}
	return orientationUnspecified
}

// fixOrientation applies a transform to img corresponding to the given orientation flag.
func fixOrientation(img *gray.Float, o orientation) *gray.Float {
	switch o {
	case orientationFlipH:
		img = gray.FlipH(img)
	case orientationFlipV:
		img = gray.FlipV(img)
	case orientationRotate90:
		img = gray.Rotate90(img)
	case orientationRotate180:
		img = gray.Rotate180(img)
	case orientationRotate270:
		img = gray.Rotate270(img)
	case orientationTranspose:
		img = gray.Transpose(img)
	case orientationTransverse:
		img = gray.Transverse(img)
	}
	return img
}

// Decode reads an image from r and reduces it to a single channel of values
// in [0, 1]. ErrNoImage is returned for images with no pixels.
func Decode(r io.Reader, opts ...DecodeOption) (*gray.Float, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, format_name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	ans, err := gray.FromImage(img, gray.WithStandard(cfg.standard), gray.WithLinearLight(cfg.linearLight))
	if err != nil {
		return nil, err
	}
	if cfg.autoOrientation {
		if o := read_orientation(data); o != orientationUnspecified && o != orientationNormal {
			ans = fixOrientation(ans, o)
			Logger().Debug().Int("orientation", int(o)).Msg("applied EXIF orientation")
		}
	}
	Logger().Debug().Str("format", format_name).Int("width", ans.Cols()).Int("height", ans.Rows()).Msg("decoded image")
	return ans, nil
}

// Open loads an image from file.
//
// Examples:
//
//	// Load an image from file.
//	img, err := pgd.Open("test.jpg")
func Open(filename string, opts ...DecodeOption) (*gray.Float, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	ans, err := Decode(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, nil
}

// OpenConfig returns the dimensions and format of an image file without
// decoding its pixels.
func OpenConfig(filename string) (ans image.Config, format Format, err error) {
	file, err := fs.Open(filename)
	if err != nil {
		return ans, UNKNOWN, err
	}
	defer file.Close()
	ans, name, err := image.DecodeConfig(file)
	return ans, types.FormatFromDecoderName(name), err
}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	JPEG    = types.JPEG
	PNG     = types.PNG
	APNG    = types.APNG
	GIF     = types.GIF
	TIFF    = types.TIFF
	WEBP    = types.WEBP
	BMP     = types.BMP
)

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("pgd: unsupported image format")

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "apng", "gif", "tif" (or "tiff"), "webp" and
// "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from filename, see
// FormatFromExtension.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	return FormatFromExtension(ext)
}

type encodeConfig struct {
	jpegQuality         int
	gifNumColors        int
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:         95,
	gifNumColors:        256,
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// JPEGQuality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better. Default is 95.
func JPEGQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF,
// TIFF or BMP). APNG is written as a single frame PNG.
func Encode(w io.Writer, img image.Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	switch format {
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.jpegQuality})

	case PNG, APNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, img)

	case GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: cfg.gifNumColors})

	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})

	case BMP:
		return bmp.Encode(w, img)
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Save saves the image to file with the specified filename.
// The format is determined from the filename extension, see
// FormatFromExtension. WEBP cannot be written.
//
// Examples:
//
//	// Save the image as PNG.
//	err := pgd.Save(img, "out.png")
//
//	// Save the image as JPEG with optional quality parameter set to 80.
//	err := pgd.Save(img, "out.jpg", pgd.JPEGQuality(80))
func Save(img image.Image, filename string, opts ...EncodeOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	if !f.CanEncode() {
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, f)
	}
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = Encode(file, img, f, opts...)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}
