package pgd

import (
	"errors"
	"fmt"
	"time"

	"github.com/kovidgoyal/pgd/border"
	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/gray"
	"github.com/kovidgoyal/pgd/interp"
	"github.com/kovidgoyal/pgd/ring"
	"github.com/kovidgoyal/pgd/traverse"
)

var _ = fmt.Print

// ErrNoImage means there is no image to compute a descriptor for.
var ErrNoImage = errors.New("pgd: no image")

// Descriptor holds the ring offsets and sampling tables of one Config. It is
// immutable once created and may be used for any number of images, from any
// number of goroutines.
type Descriptor struct {
	Config  Config
	Offsets ring.Offsets

	table   *interp.Table
	nearest *interp.Nearest
	pad     int
	opts    options
}

// New validates cfg and builds its tables.
func New(cfg Config, opts ...Option) (*Descriptor, error) {
	o := defaultOptions
	for _, option := range opts {
		option(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	if o.fastPath && !cfg.SupportsFastPath() {
		return nil, fmt.Errorf("%w: %s", ErrFastPathUnavailable, cfg)
	}
	offsets, err := ring.Generate(cfg.RingCount, cfg.RingRadius)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	d := &Descriptor{Config: cfg, Offsets: offsets, opts: o}
	extent := 0
	if o.fastPath {
		if d.nearest, err = interp.BuildNearest(offsets, cfg.SubringRadius); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		extent = d.nearest.Extent()
		// positions are snapped to pixels, so the safety margin of the
		// interpolating path is not needed
		d.pad = int(cfg.RingRadius+cfg.SubringRadius) + 1
	} else {
		if d.table, err = interp.Build(offsets, cfg.SubringCount, cfg.SubringRadius); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		extent = d.table.Extent()
		d.pad = border.RadiusFor(cfg.RingRadius, cfg.SubringRadius)
	}
	d.pad = max(d.pad, extent)
	Logger().Debug().Str("config", cfg.String()).Bool("fast_path", o.fastPath).
		Int("extent", extent).Int("pad", d.pad).Msg("built sampling tables")
	return d, nil
}

// Pad is the number of pixels added on every side of an image before it is
// traversed.
func (d *Descriptor) Pad() int { return d.pad }

// FastPath reports whether d reads sub-ring points from the nearest pixel.
func (d *Descriptor) FastPath() bool { return d.nearest != nil }

// Table returns the interpolation table, nil when using the fast path.
func (d *Descriptor) Table() *interp.Table { return d.table }

// Allocate returns an output buffer for an image of the given size.
func (d *Descriptor) Allocate(rows, cols int) (*descriptor.Buffer, error) {
	return descriptor.Allocate(rows, cols, d.Config.RingCount, d.Config.SubringCount)
}

// Compute returns the descriptor of img: one channel per ring point, each
// element the ordinal code of the sub-ring samples around that ring point.
func (d *Descriptor) Compute(img *gray.Float) (*descriptor.Buffer, error) {
	if img.Empty() {
		return nil, ErrNoImage
	}
	buf, err := d.Allocate(img.Rows(), img.Cols())
	if err != nil {
		return nil, err
	}
	if err = d.ComputeInto(img, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ComputeInto is like Compute but writes into a buffer previously obtained
// from Allocate with the dimensions of img.
func (d *Descriptor) ComputeInto(img *gray.Float, buf *descriptor.Buffer) (err error) {
	if img.Empty() {
		return ErrNoImage
	}
	log := Logger()
	start := time.Now()
	padded, err := border.Pad(img, d.pad)
	if err != nil {
		return err
	}
	log.Debug().Int("rows", img.Rows()).Int("cols", img.Cols()).Int("pad", d.pad).
		Dur("elapsed", time.Since(start)).Msg("padded source")
	if e := log.Debug(); e.Enabled() {
		l := buf.Layout()
		e.Int("rows", l.Rows).Int("cols", l.Cols).Int("channels", l.Channels).
			Str("width", l.Width).Str("size", descriptor.HumanSize(l.TotalBytes)).Msg("output buffer")
	}
	if d.nearest != nil {
		err = traverse.Nearest(padded, d.nearest, buf, d.opts.workers)
	} else {
		err = traverse.Interpolated(padded, d.table, buf, d.opts.workers)
	}
	if err != nil {
		return err
	}
	log.Info().Str("config", d.Config.String()).Int("rows", img.Rows()).Int("cols", img.Cols()).
		Int("workers", d.opts.workers).Dur("elapsed", time.Since(start)).Msg("computed descriptor")
	return nil
}

// Compute is a shortcut for New followed by Descriptor.Compute. Use New
// directly to reuse the tables for several images.
func Compute(img *gray.Float, cfg Config, opts ...Option) (*descriptor.Buffer, error) {
	if img.Empty() {
		return nil, ErrNoImage
	}
	d, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return d.Compute(img)
}
