package wfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPropagator(t *testing.T, rules []Rule) *Propagator {
	t.Helper()
	return NewPropagator(NewRuleset(rules), nil)
}

func firstChoice(possibilities []TileId, weights []uint32) (TileId, bool) {
	if len(possibilities) == 0 {
		return 0, false
	}
	return possibilities[0], true
}

func TestPropagatorCollapseSingleton(t *testing.T) {
	p := newTestPropagator(t, checkerboardRules())

	chosen, err := p.Collapse(Position{X: 0, Y: 0}, firstChoice)
	require.NoError(t, err)
	assert.Equal(t, TileId(0), chosen)

	cell, ok := p.grid.get(Position{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, []TileId{0}, p.poss.Get(cell.poss))
	assert.Equal(t, IDEmpty, cell.weight)
}

func TestPropagatorChessboardConsistency(t *testing.T) {
	p := newTestPropagator(t, checkerboardRules())

	v, err := p.Collapse(Position{X: 0, Y: 0}, firstChoice)
	require.NoError(t, err)

	for _, n := range []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}} {
		got, err := p.Collapse(n, firstChoice)
		require.NoError(t, err)
		assert.Equal(t, 1-v, got, "orthogonal neighbor of %v must be the other tile", n)
	}
}

func TestPropagatorForcedSingleEverywhere(t *testing.T) {
	p := newTestPropagator(t, []Rule{
		{Tiles: [9]TileId{0, 0, 0, 0, 0, 0, 0, 0, 0}, Weight: 1},
	})
	for _, pos := range []Position{{X: 0, Y: 0}, {X: 5, Y: -3}, {X: -10, Y: 10}} {
		got, err := p.Collapse(pos, firstChoice)
		require.NoError(t, err)
		assert.Equal(t, TileId(0), got)
	}
}

func TestPropagatorEnsureImpossibleIdempotent(t *testing.T) {
	p := newTestPropagator(t, checkerboardRules())
	pos := Position{X: 2, Y: 2}

	err1 := p.EnsureImpossible(pos, 0)
	require.NoError(t, err1)
	snapAfterFirst := p.Snapshot()

	err2 := p.EnsureImpossible(pos, 0)
	require.NoError(t, err2)
	snapAfterSecond := p.Snapshot()

	assert.Equal(t, snapAfterFirst.cells, snapAfterSecond.cells)
}

func TestPropagatorEnsureImpossibleContradiction(t *testing.T) {
	p := newTestPropagator(t, []Rule{
		{Tiles: [9]TileId{0, 0, 0, 0, 0, 0, 0, 0, 0}, Weight: 1},
	})
	pos := Position{X: 0, Y: 0}
	// Only tile 0 is ever possible; forbidding it must contradict.
	err := p.EnsureImpossible(pos, 0)
	assert.ErrorIs(t, err, ErrContradiction)
}

func TestPropagatorSnapshotRestoreExact(t *testing.T) {
	p := newTestPropagator(t, checkerboardRules())

	_, err := p.Collapse(Position{X: 0, Y: 0}, firstChoice)
	require.NoError(t, err)

	snap := p.Snapshot()

	_, err = p.Collapse(Position{X: 5, Y: 5}, firstChoice)
	require.NoError(t, err)
	require.NotEqual(t, snap.cells, p.Snapshot().cells)

	p.Restore(snap)
	assert.Equal(t, snap.cells, p.Snapshot().cells)
}

func TestPropagatorSurfacesPropagateErrorOnInconsistentNeighbors(t *testing.T) {
	// Pre-seed the grid directly (bypassing normal collapse/propagate
	// validation) so (1,1)'s orthogonal neighbors at (1,0) and (0,1) are
	// both frozen to tile 0. Checkerboard rules require every orthogonal
	// neighbor of a tile-0 cell to be tile 1, so forcing (1,1) itself to tile 0
	// directly conflicts with those frozen neighbors. Collapsing (1,1)
	// must then surface a PropagateError once propagation reaches them.
	p := newTestPropagator(t, checkerboardRules())

	zeroID := p.poss.Identify([]TileId{0})
	p.grid.set(Position{X: 1, Y: 0}, cell{poss: zeroID, weight: IDEmpty})
	p.grid.set(Position{X: 0, Y: 1}, cell{poss: zeroID, weight: IDEmpty})

	forceZero := func(_ []TileId, _ []uint32) (TileId, bool) { return 0, true }
	_, err := p.Collapse(Position{X: 1, Y: 1}, forceZero)

	var propErr *PropagateError
	require.ErrorAs(t, err, &propErr)
	assert.Equal(t, TileId(0), propErr.Attempted)
}
