package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kovidgoyal/pgd"
	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/rs/zerolog"
)

var _ = fmt.Print

func write_raw(w io.Writer, buf *descriptor.Buffer) (err error) {
	switch buf.Width {
	case descriptor.Width8:
		s, _ := descriptor.Slice[uint8](buf)
		_, err = w.Write(s)
	case descriptor.Width16:
		s, _ := descriptor.Slice[uint16](buf)
		err = binary.Write(w, binary.LittleEndian, s)
	case descriptor.Width32:
		s, _ := descriptor.Slice[uint32](buf)
		err = binary.Write(w, binary.LittleEndian, s)
	case descriptor.Width64:
		s, _ := descriptor.Slice[uint64](buf)
		err = binary.Write(w, binary.LittleEndian, s)
	}
	return
}

func save(filename string, write func(io.Writer) error) error {
	out, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if errc := out.Close(); err == nil {
		err = errc
	}
	return err
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
	subrings := flag.Int("subrings", 0, "number of sub-ring points, 1 to 64, defaults to -rings")
	subradius := flag.Float64("subradius", 0, "sub-ring radius in pixels, defaults to -radius")
	fast := flag.Bool("fast", false, "read sub-ring points from the nearest pixel, only for 4 ring and sub-ring points with integer radii")
	workers := flag.Int("workers", 1, "goroutines to partition rows over, 0 for one per CPU")
	apng_output := flag.String("apng", "", "write every channel as a frame of this animated PNG")
	raw_output := flag.String("raw", "", "write the codes, little endian and row-major, to this file")
	hist := flag.Int("hist", 0, "print code statistics over a grid of this many cells per side, codes of at most 16 bits only")
	verbose := flag.Bool("v", false, "log debug information")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: pgd [flags] input-file")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).Level(level).With().Timestamp().Logger()
	pgd.SetLogger(&logger)

	cfg := pgd.Config{RingCount: *rings, RingRadius: *radius, SubringCount: *subrings, SubringRadius: *subradius}
	img, err := pgd.Open(flag.Arg(0))
	if err != nil {
		return
	}
	d, err := pgd.New(cfg, pgd.Workers(*workers), pgd.FastPath(*fast))
	if err != nil {
		return
	}
	start := time.Now()
	buf, err := d.Compute(img)
	if err != nil {
		return
	}
	elapsed := time.Since(start)
	fmt.Println(buf.Layout())
	fmt.Printf("Computed %s descriptor of %dx%d image in %s\n", d.Config, img.Cols(), img.Rows(), elapsed)
	if *hist > 0 {
		var summary *pgd.Summary
		if summary, err = pgd.Summarize(buf, *hist); err != nil {
			return
		}
		fmt.Printf("Mean Hamming distance between horizontal neighbours: %.3f bits\n", summary.NeighbourDistance)
		for _, c := range summary.Channels {
			fmt.Printf("  channel %2d: entropy %.3f nats, similarity to channel 0 %.3f\n", c.Channel, c.Entropy, c.Similarity)
		}
	}
	if *apng_output != "" {
		if err = save(*apng_output, func(w io.Writer) error { return pgd.EncodeChannelsAPNG(w, buf) }); err != nil {
			return
		}
		fmt.Println("Channels saved to:", *apng_output)
	}
	if *raw_output != "" {
		if err = save(*raw_output, func(w io.Writer) error { return write_raw(w, buf) }); err != nil {
			return
		}
		fmt.Println("Codes saved to:", *raw_output)
	}
}
