package pgd

import (
	"fmt"

	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/histogram"
)

var _ = fmt.Print

// ChannelStats summarises the codes of one ring point.
type ChannelStats struct {
	Channel int `json:"channel"`
	// Entropy of the code distribution over the whole image, in nats.
	Entropy float64 `json:"entropy"`
	// Similarity is the cosine similarity of the grid histogram of this
	// channel with that of channel 0.
	Similarity float64 `json:"similarity"`
}

// Summary describes the code statistics of a descriptor buffer.
type Summary struct {
	Cells             int            `json:"cells"`
	Channels          []ChannelStats `json:"channels"`
	NeighbourDistance float64        `json:"neighbour_distance"`
}

// Summarize computes per channel statistics of buf using a cells x cells
// histogram grid. Only buffers of at most histogram.MaxSubringCount bit
// codes can be summarized.
func Summarize(buf *descriptor.Buffer, cells int) (ans *Summary, err error) {
	if buf == nil || buf.Len() == 0 {
		return nil, ErrNoImage
	}
	ans = &Summary{Cells: cells, Channels: make([]ChannelStats, buf.Channels)}
	var first []float64
	for ch := range buf.Channels {
		whole, err := histogram.Grid(buf, ch, 1)
		if err != nil {
			return nil, err
		}
		grid, err := histogram.Grid(buf, ch, cells)
		if err != nil {
			return nil, err
		}
		if ch == 0 {
			first = grid
		}
		s := &ans.Channels[ch]
		s.Channel, s.Entropy = ch, histogram.Entropy(whole)
		if s.Similarity, err = histogram.Cosine(first, grid); err != nil {
			return nil, err
		}
	}
	if ans.NeighbourDistance, err = histogram.NeighbourHamming(buf); err != nil {
		return nil, err
	}
	Logger().Debug().Int("channels", buf.Channels).Int("cells", cells).
		Float64("neighbour_distance", ans.NeighbourDistance).Msg("summarized codes")
	return ans, nil
}
