package pgd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/pgd/colorconv"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

// half_image is black on the left half and white on the right half.
func half_image(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := width / 2; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

// with_orientation inserts an EXIF APP1 segment holding only the
// orientation tag right after the SOI marker of a JPEG stream.
func with_orientation(t *testing.T, jpg []byte, o uint16) []byte {
	t.Helper()
	var tiff bytes.Buffer
	tiff.WriteString("MM")
	w := func(v any) { require.NoError(t, binary.Write(&tiff, binary.BigEndian, v)) }
	w(uint16(42))
	w(uint32(8))
	w(uint16(1))      // entry count
	w(uint16(0x0112)) // orientation
	w(uint16(3))      // SHORT
	w(uint32(1))
	w(o)
	w(uint16(0))
	w(uint32(0)) // no next IFD
	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	var seg bytes.Buffer
	seg.Write([]byte{0xff, 0xe1})
	require.NoError(t, binary.Write(&seg, binary.BigEndian, uint16(len(payload)+2)))
	seg.Write(payload)
	ans := append([]byte{}, jpg[:2]...)
	ans = append(ans, seg.Bytes()...)
	return append(ans, jpg[2:]...)
}

func TestDecode(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(src.Pix, []uint8{0, 51, 102, 153, 204, 255})
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, src))
	img, err := Decode(&b)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	if diff := cmp.Diff([]float64{0, 0.2, 0.4, 0.6, 0.8, 1}, img.Pix); diff != "" {
		t.Fatalf("unexpected pixels (-want +got):\n%s", diff)
	}

	rgb := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	rgb.Pix = []uint8{255, 0, 0, 255}
	b.Reset()
	require.NoError(t, png.Encode(&b, rgb))
	data := b.Bytes()
	img, err = Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.InDelta(t, 0.299, img.Pix[0], 1e-9)
	img, err = Decode(bytes.NewReader(data), Luma(colorconv.Rec709))
	require.NoError(t, err)
	require.InDelta(t, 0.2126, img.Pix[0], 1e-9)

	_, err = Decode(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
}

func TestDecodeOrientation(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, jpeg.Encode(&b, half_image(16, 8), &jpeg.Options{Quality: 100}))
	plain := b.Bytes()

	img, err := Decode(bytes.NewReader(plain))
	require.NoError(t, err)
	require.Less(t, img.FloatAt(1, 4), 0.1)
	require.Greater(t, img.FloatAt(14, 4), 0.9)

	rotated := with_orientation(t, plain, 3)
	img, err = Decode(bytes.NewReader(rotated))
	require.NoError(t, err)
	require.Equal(t, 16, img.Cols())
	require.Greater(t, img.FloatAt(1, 4), 0.9)
	require.Less(t, img.FloatAt(14, 4), 0.1)

	img, err = Decode(bytes.NewReader(rotated), AutoOrientation(false))
	require.NoError(t, err)
	require.Less(t, img.FloatAt(1, 4), 0.1)

	img, err = Decode(bytes.NewReader(with_orientation(t, plain, 6)))
	require.NoError(t, err)
	require.Equal(t, 8, img.Cols())
	require.Equal(t, 16, img.Rows())
}

func TestFormats(t *testing.T) {
	for _, tc := range []struct {
		name   string
		format Format
	}{
		{"a.jpg", JPEG}, {"a.JPEG", JPEG}, {"b.png", PNG}, {"b.apng", APNG},
		{"c.gif", GIF}, {"d.tif", TIFF}, {"d.tiff", TIFF}, {"e.bmp", BMP}, {"f.webp", WEBP},
	} {
		f, err := FormatFromFilename(tc.name)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.format, f, tc.name)
	}
	_, err := FormatFromFilename("a.xcf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.ErrorIs(t, Encode(io.Discard, half_image(2, 2), WEBP), ErrUnsupportedFormat)
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	src := half_image(6, 4)
	for _, ext := range []string{"png", "gif", "tiff", "bmp"} {
		t.Run(ext, func(t *testing.T) {
			name := filepath.Join(dir, "x."+ext)
			require.NoError(t, Save(src, name))
			img, err := Open(name)
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), img.Bounds())
			for y := range 4 {
				for x := range 6 {
					require.InDelta(t, float64(src.GrayAt(x, y).Y)/255, img.FloatAt(x, y), 1e-9)
				}
			}
			cfg, f, err := OpenConfig(name)
			require.NoError(t, err)
			require.Equal(t, 6, cfg.Width)
			want, _ := FormatFromExtension(ext)
			require.Equal(t, want, f)
		})
	}
	require.ErrorIs(t, Save(src, filepath.Join(dir, "x.webp")), ErrUnsupportedFormat)
	_, err := os.Stat(filepath.Join(dir, "x.webp"))
	require.True(t, os.IsNotExist(err))
	_, err = Open(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
}

func TestEncodeOptions(t *testing.T) {
	noisy := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range noisy.Pix {
		noisy.Pix[i] = uint8((i*7919 + i*i*31) % 251)
	}
	size := func(img image.Image, format Format, opts ...EncodeOption) int {
		var b bytes.Buffer
		require.NoError(t, Encode(&b, img, format, opts...))
		return b.Len()
	}
	require.Greater(t, size(noisy, JPEG, JPEGQuality(100)), size(noisy, JPEG, JPEGQuality(10)))
	halves := half_image(64, 64)
	require.Greater(t, size(halves, PNG, PNGCompressionLevel(png.NoCompression)), size(halves, PNG, PNGCompressionLevel(png.BestCompression)))

	var b bytes.Buffer
	require.NoError(t, Encode(&b, half_image(8, 4), GIF, GIFNumColors(2)))
	g, err := gif.Decode(&b)
	require.NoError(t, err)
	require.Len(t, g.(*image.Paletted).Palette, 2)
}
