package pgd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/gray"
	"github.com/kovidgoyal/pgd/interp"
	"github.com/kovidgoyal/pgd/ring"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func ramp(width, height int) *gray.Float {
	img := gray.NewFloat(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetFloat(x, y, float64((x*7+y*13)%17)/16)
		}
	}
	return img
}

func TestConfig(t *testing.T) {
	c := Config{RingCount: 8, RingRadius: 2}
	n := c.Normalized()
	require.Equal(t, Config{RingCount: 8, RingRadius: 2, SubringCount: 8, SubringRadius: 2}, n)
	require.Equal(t, "8@2/8@2", c.String())
	require.NoError(t, c.Validate())
	require.NoError(t, DefaultConfig.Validate())

	for _, tc := range []struct {
		name  string
		cfg   Config
		cause error
	}{
		{"zero", Config{}, ring.ErrInvalidCount},
		{"not a multiple of four", Config{RingCount: 6, RingRadius: 1}, ring.ErrInvalidCount},
		{"negative radius", Config{RingCount: 4, RingRadius: -1}, ring.ErrInvalidRadius},
		{"too many sub-ring points", Config{RingCount: 4, RingRadius: 1, SubringCount: 65}, interp.ErrInvalidCount},
		{"negative sub-ring count", Config{RingCount: 4, RingRadius: 1, SubringCount: -1}, interp.ErrInvalidCount},
		{"negative sub-ring radius", Config{RingCount: 4, RingRadius: 1, SubringRadius: -2}, interp.ErrInvalidRadius},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorIs(t, err, tc.cause)
			_, err = New(tc.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	require.True(t, Config{RingCount: 4, RingRadius: 5, SubringRadius: 3}.SupportsFastPath())
	require.False(t, Config{RingCount: 4, RingRadius: 5.5, SubringRadius: 3}.SupportsFastPath())
	require.False(t, Config{RingCount: 8, RingRadius: 5}.SupportsFastPath())
	require.False(t, Config{RingCount: 4, RingRadius: 5, SubringCount: 8}.SupportsFastPath())
}

func TestWidthSelection(t *testing.T) {
	img := ramp(12, 9)
	for _, tc := range []struct {
		rings, subrings int
		width           descriptor.Width
	}{
		{4, 4, descriptor.Width8},
		{8, 8, descriptor.Width8},
		{8, 16, descriptor.Width16},
		{4, 32, descriptor.Width32},
		{4, 64, descriptor.Width64},
	} {
		t.Run(fmt.Sprintf("%d/%d", tc.rings, tc.subrings), func(t *testing.T) {
			buf, err := Compute(img, Config{RingCount: tc.rings, RingRadius: 2, SubringCount: tc.subrings, SubringRadius: 1})
			require.NoError(t, err)
			require.Equal(t, tc.width, buf.Width)
			require.Equal(t, tc.rings, buf.Channels)
			require.Equal(t, 9, buf.Rows)
			require.Equal(t, 12, buf.Cols)
		})
	}
}

func TestCompute(t *testing.T) {
	flat := gray.NewFloat(image.Rect(0, 0, 20, 16))
	buf, err := Compute(flat, Config{RingCount: 4, RingRadius: 5, SubringRadius: 3})
	require.NoError(t, err)
	for i := range buf.Len() {
		require.Zero(t, buf.At(i/(buf.Cols*buf.Channels), (i/buf.Channels)%buf.Cols, i%buf.Channels))
	}

	_, err = Compute(nil, DefaultConfig)
	require.ErrorIs(t, err, ErrNoImage)
	_, err = Compute(gray.NewFloat(image.Rect(0, 0, 0, 5)), DefaultConfig)
	require.ErrorIs(t, err, ErrNoImage)

	img := ramp(23, 19)
	d, err := New(Config{RingCount: 8, RingRadius: 2.5, SubringCount: 12, SubringRadius: 1.5})
	require.NoError(t, err)
	require.Equal(t, 5, d.Pad())
	require.False(t, d.FastPath())
	require.NotNil(t, d.Table())
	first, err := d.Compute(img)
	require.NoError(t, err)
	second, err := d.Compute(img)
	require.NoError(t, err)
	require.True(t, first.Equal(second))

	parallel, err := New(d.Config, Workers(4))
	require.NoError(t, err)
	third, err := parallel.Compute(img)
	require.NoError(t, err)
	require.True(t, first.Equal(third))

	into, err := d.Allocate(img.Rows(), img.Cols())
	require.NoError(t, err)
	require.NoError(t, d.ComputeInto(img, into))
	require.True(t, first.Equal(into))
	wrong, err := d.Allocate(img.Rows()+1, img.Cols())
	require.NoError(t, err)
	require.Error(t, d.ComputeInto(img, wrong))

	// images smaller than the sampling radius are handled by the replicated
	// border
	tiny := ramp(2, 3)
	_, err = Compute(tiny, Config{RingCount: 16, RingRadius: 9, SubringCount: 16, SubringRadius: 7})
	require.NoError(t, err)
}

func TestFastPath(t *testing.T) {
	_, err := New(DefaultConfig, FastPath(true))
	require.ErrorIs(t, err, ErrFastPathUnavailable)

	cfg := Config{RingCount: 4, RingRadius: 5, SubringRadius: 3}
	d, err := New(cfg, FastPath(true))
	require.NoError(t, err)
	require.True(t, d.FastPath())
	require.Nil(t, d.Table())
	require.Equal(t, 9, d.Pad())

	img := gray.NewFloat(image.Rect(0, 0, 30, 24))
	for y := range 24 {
		for x := range 30 {
			img.SetFloat(x, y, float64(y*30+x)/(30*24))
		}
	}
	fast, err := d.Compute(img)
	require.NoError(t, err)
	require.Equal(t, descriptor.Width8, fast.Width)
	// with integer radii on a 4x4 layout, every sub-ring point falls on a
	// pixel, so away from the replicated border interpolation agrees
	slow, err := Compute(img, cfg)
	require.NoError(t, err)
	for r := 8; r < 24-8; r++ {
		for c := 8; c < 30-8; c++ {
			require.Equal(t, slow.Codes(r, c), fast.Codes(r, c), "pixel (%d, %d)", r, c)
		}
	}

	fast_parallel, err := Compute(img, cfg, FastPath(true), Workers(0))
	require.NoError(t, err)
	require.True(t, fast.Equal(fast_parallel))
}

func TestLogging(t *testing.T) {
	var out bytes.Buffer
	l := zerolog.New(&out).Level(zerolog.DebugLevel)
	SetLogger(&l)
	t.Cleanup(func() { SetLogger(nil) })
	require.Same(t, &l, Logger())

	_, err := Compute(ramp(10, 10), DefaultConfig)
	require.NoError(t, err)
	s := out.String()
	require.Contains(t, s, `"message":"built sampling tables"`)
	require.Contains(t, s, `"message":"output buffer"`)
	require.Contains(t, s, `"message":"computed descriptor"`)
	require.Contains(t, s, `"config":"8@2/8@2"`)

	SetLogger(nil)
	out.Reset()
	_, err = Compute(ramp(10, 10), DefaultConfig)
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestErrorsWrap(t *testing.T) {
	_, err := New(Config{RingCount: 3, RingRadius: 1})
	require.True(t, errors.Is(err, ErrInvalidConfig))
	require.False(t, errors.Is(err, ErrFastPathUnavailable))
}

func TestVersion(t *testing.T) {
	require.Equal(t, "1.0.0", Version.String())
	require.True(t, Version.After(PGDVersion{0, 9, 9}))
	require.True(t, Version.Before(PGDVersion{1, 0, 1}))
	require.False(t, Version.Before(Version))
}
