package wfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldCheckerboard(t *testing.T) {
	w := NewWorld(checkerboardRules(), 4, WithSeed(42))

	v := w.Get(0, 0)
	for _, n := range [][2]int32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		got := w.Get(n[0], n[1])
		assert.Equal(t, 1-v, got, "orthogonal neighbor (%d,%d) must be the other tile", n[0], n[1])
	}
}

func TestWorldForcedSingle(t *testing.T) {
	w := NewWorld([]Rule{
		{Tiles: [9]TileId{0, 0, 0, 0, 0, 0, 0, 0, 0}, Weight: 1},
	}, 4, WithSeed(7))

	for x := int32(-5); x <= 5; x++ {
		for y := int32(-5); y <= 5; y++ {
			assert.Equal(t, TileId(0), w.Get(x, y))
		}
	}
}

func TestWorldDeterministicUnderFixedSeed(t *testing.T) {
	rules := checkerboardRules()
	positions := [][2]int32{{0, 0}, {3, -2}, {1, 1}, {-4, 4}, {0, 0}}

	w1 := NewWorld(rules, 4, WithSeed(123))
	w2 := NewWorld(rules, 4, WithSeed(123))

	for _, p := range positions {
		got1 := w1.Get(p[0], p[1])
		got2 := w2.Get(p[0], p[1])
		assert.Equal(t, got1, got2, "worlds with identical seed must agree at %v", p)
	}
}

func TestWorldWeightedSamplingApproximatesWeights(t *testing.T) {
	// A single free-standing cell (no neighbor constraints yet touched)
	// with three tiles weighted 1:2:5 out of a total domain that always
	// accepts each other, so raw rule weights drive the distribution.
	rules := []Rule{
		{Tiles: [9]TileId{0, 0, 0, 0, 0, 0, 0, 0, 0}, Weight: 1},
		{Tiles: [9]TileId{0, 0, 0, 0, 1, 0, 0, 0, 0}, Weight: 2},
		{Tiles: [9]TileId{0, 0, 0, 0, 2, 0, 0, 0, 0}, Weight: 5},
	}
	// every tile's neighbors are unconstrained (any of 0,1,2) by omission:
	// fill remaining slots with a wildcard-like rule set so all tiles stay
	// possible at isolated positions regardless of neighbor value.
	var full []Rule
	for _, center := range []TileId{0, 1, 2} {
		for _, n := range []TileId{0, 1, 2} {
			w := uint32(1)
			if center == 0 {
				w = 1
			} else if center == 1 {
				w = 2
			} else {
				w = 5
			}
			full = append(full, Rule{Tiles: [9]TileId{n, n, n, n, center, n, n, n, n}, Weight: w})
		}
	}
	_ = rules

	counts := map[TileId]int{}
	const trials = 6000
	for i := int32(0); i < trials; i++ {
		w := NewWorld(full, 4, WithSeed(uint64(i)+1))
		counts[w.Get(i, 0)]++
	}

	total := float64(trials)
	p0 := float64(counts[0]) / total
	p1 := float64(counts[1]) / total
	p2 := float64(counts[2]) / total

	// Expected proportions 1/8, 2/8, 5/8, each within a generous tolerance
	// (this is a statistical property, not an exact one).
	require.InDelta(t, 0.125, p0, 0.05)
	require.InDelta(t, 0.25, p1, 0.05)
	require.InDelta(t, 0.625, p2, 0.05)
}

func TestWorldPanicsOnImpossibleRuleset(t *testing.T) {
	// A ruleset that is satisfiable at the seed state but where the only
	// surviving configuration contradicts once two incompatible forced
	// neighbors meet, and stability is too small to ever recover, must
	// panic rather than loop or silently misbehave.
	defer func() {
		r := recover()
		assert.NotNil(t, r, "expected a panic once the snapshot store is exhausted")
	}()

	w := NewWorld(checkerboardRules(), 0)
	// Directly corrupt internal state to force an unrecoverable
	// contradiction regardless of backtracking, exercising the panic path
	// deterministically instead of depending on adversarial scheduling.
	// (1,0) frozen to tile 0 and (0,1) frozen to tile 1 are mutually
	// inconsistent checkerboard demands on (1,1): whichever tile (1,1)
	// takes, one of its two orthogonal neighbors is violated, and with a
	// snapshot store of stability 0 there is nothing left to backtrack to.
	zeroID := w.prop.poss.Identify([]TileId{0})
	oneID := w.prop.poss.Identify([]TileId{1})
	w.prop.grid.set(Position{X: 1, Y: 0}, cell{poss: zeroID, weight: IDEmpty})
	w.prop.grid.set(Position{X: 0, Y: 1}, cell{poss: oneID, weight: IDEmpty})

	w.Get(1, 1)
}
