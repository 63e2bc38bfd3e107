package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/kovidgoyal/pgd"
	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/histogram"
)

var _ = fmt.Print

type channel_summary struct {
	pgd.ChannelStats
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Filename string  `json:"filename"`
}

var compression_levels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

type report struct {
	Config   pgd.Config        `json:"config"`
	Layout   descriptor.Layout `json:"layout"`
	Channels []channel_summary `json:"channels"`
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	rings := flag.Int("rings", pgd.DefaultConfig.RingCount, "number of ring points, a multiple of 4")
	radius := flag.Float64("radius", pgd.DefaultConfig.RingRadius, "ring radius in pixels")
	subrings := flag.Int("subrings", 0, "number of sub-ring points, defaults to -rings")
	subradius := flag.Float64("subradius", 0, "sub-ring radius in pixels, defaults to -radius")
	ext := flag.String("ext", "png", "format of the channel images: png, jpg, gif, tiff or bmp")
	quality := flag.Int("quality", 95, "JPEG quality, 1 to 100")
	colors := flag.Int("colors", 256, "GIF palette size, 1 to 256")
	compression := flag.String("compression", "default", "PNG compression: default, none, speed or best")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/channels [flags] input-file [output-prefix]")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}
	img, err := pgd.Open(flag.Arg(0))
	if err != nil {
		return
	}
	output_prefix := flag.Arg(0)
	if flag.NArg() == 2 {
		output_prefix = flag.Arg(1)
	}
	level, ok := compression_levels[*compression]
	if !ok {
		err = fmt.Errorf("unknown PNG compression: %s", *compression)
		return
	}
	encode_opts := []pgd.EncodeOption{pgd.JPEGQuality(*quality), pgd.GIFNumColors(*colors), pgd.PNGCompressionLevel(level)}
	d, err := pgd.New(pgd.Config{RingCount: *rings, RingRadius: *radius, SubringCount: *subrings, SubringRadius: *subradius})
	if err != nil {
		return
	}
	buf, err := d.Compute(img)
	if err != nil {
		return
	}
	r := report{Config: d.Config, Layout: buf.Layout()}
	var stats *pgd.Summary
	if buf.SubringCount <= histogram.MaxSubringCount {
		if stats, err = pgd.Summarize(buf, 1); err != nil {
			return
		}
	}
	for ch := range buf.Channels {
		s := channel_summary{X: d.Offsets[ch].X, Y: d.Offsets[ch].Y,
			Filename: fmt.Sprintf("%s-ch%02d.%s", output_prefix, ch, *ext)}
		s.Channel = ch
		if stats != nil {
			s.ChannelStats = stats.Channels[ch]
		}
		if err = pgd.SaveChannel(buf, ch, s.Filename, encode_opts...); err != nil {
			return
		}
		r.Channels = append(r.Channels, s)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return
	}
	output_file := fmt.Sprintf("%s-layout.json", output_prefix)
	if err = os.WriteFile(output_file, b, 0o666); err != nil {
		return
	}
	fmt.Printf("Channels written to %s-ch*.%s and %s\n", output_prefix, *ext, output_file)
}
