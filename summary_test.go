package pgd

import (
	"fmt"
	"math"
	"testing"

	"github.com/kovidgoyal/pgd/descriptor"
	"github.com/kovidgoyal/pgd/histogram"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestSummarize(t *testing.T) {
	buf, err := descriptor.Allocate(4, 4, 4, 4)
	require.NoError(t, err)
	// channel 1 uses two codes equally, the others are flat
	for r := range 4 {
		for c := range 4 {
			buf.Set(r, c, 1, uint64(c%2))
		}
	}
	s, err := Summarize(buf, 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.Cells)
	require.Len(t, s.Channels, 4)
	require.InDelta(t, 0, s.Channels[0].Entropy, 1e-12)
	require.InDelta(t, math.Log(2), s.Channels[1].Entropy, 1e-12)
	require.InDelta(t, 1, s.Channels[0].Similarity, 1e-12)
	require.InDelta(t, 1, s.Channels[2].Similarity, 1e-12)
	require.InDelta(t, 1/math.Sqrt2, s.Channels[1].Similarity, 1e-12)
	// every horizontal pair differs by one bit in channel 1
	require.InDelta(t, 1, s.NeighbourDistance, 1e-12)

	computed, err := Compute(ramp(16, 12), Config{RingCount: 8, RingRadius: 2})
	require.NoError(t, err)
	s, err = Summarize(computed, 3)
	require.NoError(t, err)
	for _, ch := range s.Channels {
		require.GreaterOrEqual(t, ch.Entropy, 0.0)
		require.LessOrEqual(t, ch.Entropy, 8*math.Ln2+1e-9)
	}

	_, err = Summarize(nil, 2)
	require.ErrorIs(t, err, ErrNoImage)
	_, err = Summarize(buf, 5)
	require.ErrorIs(t, err, histogram.ErrInvalidCells)
	wide, err := descriptor.Allocate(2, 2, 4, 32)
	require.NoError(t, err)
	_, err = Summarize(wide, 1)
	require.ErrorIs(t, err, histogram.ErrTooManyBins)
}
