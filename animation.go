package pgd

import (
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
	"github.com/kovidgoyal/pgd/descriptor"
)

var _ = fmt.Print

type exportConfig struct {
	delay     time.Duration
	loopCount uint
}

var defaultExportConfig = exportConfig{delay: 500 * time.Millisecond}

// ExportOption sets an optional parameter for EncodeChannelsAPNG.
type ExportOption func(*exportConfig)

// FrameDelay sets how long each channel is shown. Default is half a second.
func FrameDelay(d time.Duration) ExportOption {
	return func(c *exportConfig) {
		c.delay = d
	}
}

// LoopCount sets how many times the animation plays, 0 means loop forever,
// which is the default.
func LoopCount(n uint) ExportOption {
	return func(c *exportConfig) {
		c.loopCount = n
	}
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()

	// continued fraction convergents, stopping before either term overflows
	best_num, best_den := uint16(0), uint16(1)
	best_error := math.Abs(val)
	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0
	f := val
	for range 98 {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		cn, cd := uint16(h[2]), uint16(k[2])
		if e := math.Abs(val - float64(cn)/float64(cd)); e < best_error {
			best_error, best_num, best_den = e, cn, cd
		}
		if f-float64(a) == 0 {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return best_num, best_den
}

func channels_as_apng(buf *descriptor.Buffer, cfg *exportConfig) (ans apng.APNG) {
	ans.LoopCount = cfg.loopCount
	num, den := as_fraction(cfg.delay)
	for ch := range buf.Channels {
		ans.Frames = append(ans.Frames, apng.Frame{
			Image:     buf.ChannelImage(ch),
			DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE,
			DelayNumerator: num, DelayDenominator: den,
		})
	}
	return
}

// EncodeChannelsAPNG writes every channel of buf as one frame of an animated
// PNG, in ring point order. Codes are scaled to the full 16 bit gray range,
// see descriptor.Buffer.ChannelImage.
func EncodeChannelsAPNG(w io.Writer, buf *descriptor.Buffer, opts ...ExportOption) error {
	if buf == nil || buf.Len() == 0 {
		return ErrNoImage
	}
	cfg := defaultExportConfig
	for _, option := range opts {
		option(&cfg)
	}
	Logger().Debug().Int("frames", buf.Channels).Dur("delay", cfg.delay).Msg("encoding channel animation")
	return apng.Encode(w, channels_as_apng(buf, &cfg))
}

// Channel is one decoded frame of a channel animation.
type Channel struct {
	Image image.Image
	Delay time.Duration
}

// DecodeChannelsAPNG reads back the frames written by EncodeChannelsAPNG.
func DecodeChannelsAPNG(r io.Reader) (ans []Channel, loopCount uint, err error) {
	p, err := apng.DecodeAll(r)
	if err != nil {
		return nil, 0, err
	}
	for _, f := range p.Frames {
		if f.IsDefault {
			continue
		}
		ans = append(ans, Channel{Image: f.Image, Delay: time.Duration(float64(time.Second) * f.GetDelay())})
	}
	return ans, p.LoopCount, nil
}

// SaveChannel writes channel ch of buf as a grayscale image. The format is
// determined from the filename extension, see Save.
func SaveChannel(buf *descriptor.Buffer, ch int, filename string, opts ...EncodeOption) error {
	if ch < 0 || ch >= buf.Channels {
		return fmt.Errorf("channel %d out of range [0, %d)", ch, buf.Channels)
	}
	return Save(buf.ChannelImage(ch), filename, opts...)
}
