package pgd

import (
	"errors"
	"fmt"
	"math"

	"github.com/kovidgoyal/pgd/interp"
	"github.com/kovidgoyal/pgd/ring"
)

var _ = fmt.Print

var (
	// ErrInvalidConfig wraps every configuration failure. It is returned
	// before any table is built.
	ErrInvalidConfig = errors.New("pgd: invalid sampling configuration")
	// ErrFastPathUnavailable means the nearest pixel fast path was requested
	// for a configuration other than 4 ring points and 4 sub-ring points with
	// integer radii.
	ErrFastPathUnavailable = errors.New("pgd: fast path needs 4 ring points, 4 sub-ring points and integer radii")
)

// Config holds the sampling parameters of the descriptor. Zero values of
// SubringCount and SubringRadius mean the same as RingCount and RingRadius.
type Config struct {
	RingCount     int
	RingRadius    float64
	SubringCount  int
	SubringRadius float64
}

// DefaultConfig is 8 ring points and 8 sub-ring points of radius 2.
var DefaultConfig = Config{RingCount: 8, RingRadius: 2}

func (c Config) String() string {
	n := c.Normalized()
	return fmt.Sprintf("%d@%g/%d@%g", n.RingCount, n.RingRadius, n.SubringCount, n.SubringRadius)
}

// Normalized returns c with the sub-ring defaults filled in.
func (c Config) Normalized() Config {
	if c.SubringCount == 0 {
		c.SubringCount = c.RingCount
	}
	if c.SubringRadius == 0 {
		c.SubringRadius = c.RingRadius
	}
	return c
}

// Validate checks the normalized configuration.
func (c Config) Validate() error {
	n := c.Normalized()
	if n.RingCount < 4 || n.RingCount%4 != 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ring.ErrInvalidCount, n.RingCount)
	}
	if !ring.ValidRadius(n.RingRadius) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, ring.ErrInvalidRadius, n.RingRadius)
	}
	if n.SubringCount < 1 || n.SubringCount > interp.MaxSubringCount {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, interp.ErrInvalidCount, n.SubringCount)
	}
	if !ring.ValidRadius(n.SubringRadius) {
		return fmt.Errorf("%w: %w: %v", ErrInvalidConfig, interp.ErrInvalidRadius, n.SubringRadius)
	}
	return nil
}

// SupportsFastPath reports whether the nearest pixel fast path can be used.
func (c Config) SupportsFastPath() bool {
	n := c.Normalized()
	is_int := func(x float64) bool { return x == math.Trunc(x) }
	return n.RingCount == 4 && n.SubringCount == 4 && is_int(n.RingRadius) && is_int(n.SubringRadius)
}

type options struct {
	workers  int
	fastPath bool
}

var defaultOptions = options{workers: 1}

// Option sets an optional parameter of New and Compute.
type Option func(*options)

// Workers sets the number of goroutines rows are partitioned over. The
// default is 1, which computes on the calling goroutine. Values below 1 use
// GOMAXPROCS.
func Workers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// FastPath enables reading every sub-ring point from the nearest pixel
// instead of interpolating it. Only available when
// Config.SupportsFastPath is true. Codes may differ from the interpolating
// path wherever a sub-ring point does not fall exactly on a pixel.
func FastPath(enabled bool) Option {
	return func(o *options) {
		o.fastPath = enabled
	}
}
