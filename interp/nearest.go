package interp

import (
	"errors"
	"fmt"
	"math"

	"github.com/kovidgoyal/pgd/ring"
)

var _ = fmt.Print

var ErrNotFourByFour = errors.New("interp: nearest pixel sampling needs exactly 4 ring points and 4 sub-ring points")

const nearest_count = 4

// Nearest is the table of the 4x4 fast path: every sub-ring point is snapped
// to the nearest pixel (rounding half away from zero) instead of being
// interpolated.
type Nearest struct {
	SubringRadius float64

	dx, dy [nearest_count * nearest_count]int
	extent int
}

func BuildNearest(offsets ring.Offsets, subringRadius float64) (*Nearest, error) {
	if err := validate_subring(offsets, nearest_count, subringRadius); err != nil {
		return nil, err
	}
	if len(offsets) != nearest_count {
		return nil, fmt.Errorf("%w: got %d ring points", ErrNotFourByFour, len(offsets))
	}
	ans := &Nearest{SubringRadius: subringRadius}
	for i := range nearest_count {
		for j := range nearest_count {
			x, y := Position(offsets, i, j, nearest_count, subringRadius)
			k := i*nearest_count + j
			ans.dx[k], ans.dy[k] = int(math.Round(x)), int(math.Round(y))
			ans.extent = max(ans.extent, abs(ans.dx[k]), abs(ans.dy[k]))
		}
	}
	return ans, nil
}

// Offset returns the pixel offset of sub-ring point j of ring point i.
func (n *Nearest) Offset(i, j int) (dx, dy int) {
	k := i*nearest_count + j
	return n.dx[k], n.dy[k]
}

func (n *Nearest) Extent() int { return n.extent }

func (n *Nearest) Linear(stride int) (ans [nearest_count * nearest_count]int) {
	for i, dx := range n.dx {
		ans[i] = n.dy[i]*stride + dx
	}
	return
}
