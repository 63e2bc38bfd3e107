package descriptor

import (
	"fmt"
)

var _ = fmt.Print

// Layout describes the memory layout of a Buffer. It is informational only.
type Layout struct {
	Rows, Cols, Channels int
	SubringCount         int
	Width                string
	// BytesPerChannel is the storage used by one code, which may exceed the
	// SubringCount bits actually used.
	BytesPerChannel int
	BytesPerElement int
	RowStride       int
	TotalBytes      int64
}

func (b *Buffer) Layout() Layout {
	per_element := int(b.Width) * b.Channels
	return Layout{
		Rows: b.Rows, Cols: b.Cols, Channels: b.Channels, SubringCount: b.SubringCount,
		Width:           b.Width.String(),
		BytesPerChannel: int(b.Width),
		BytesPerElement: per_element,
		RowStride:       per_element * b.Cols,
		TotalBytes:      int64(per_element) * int64(b.Cols) * int64(b.Rows),
	}
}

// HumanSize formats a byte count using B, KB, MB or GB.
func HumanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB"} {
		if size < 1024 {
			if unit == "B" {
				return fmt.Sprintf("%d B", n)
			}
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f GB", size)
}

func (l Layout) String() string {
	return fmt.Sprintf("%d rows x %d cols x %d channels, %d bits per code stored as %s (%d bytes per element, %d bytes per row), total %s",
		l.Rows, l.Cols, l.Channels, l.SubringCount, l.Width, l.BytesPerElement, l.RowStride, HumanSize(l.TotalBytes))
}
