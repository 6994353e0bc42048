package wfc

import (
	"go.uber.org/zap"
)

// Snapshot is an immutable, value-typed full copy of a Propagator's Grid at
// a point in time. Snapshot, Restore, and the SnapshotStore in this package
// never mutate a Snapshot's contents after it is taken — restoring from one
// installs a fresh copy of its map, never the same map a later Snapshot
// call might also be holding a reference to.
type Snapshot struct {
	cells map[uint64]cell
}

// Propagator holds the mutable state of one constraint-propagation run: a
// Grid, the Ruleset it checks cells against, the two interners that give
// possibility- and weight-sets their stable ids, and scratch buffers reused
// across calls to avoid allocation on the hot path.
//
// A Propagator is not safe for concurrent use; see package doc.
type Propagator struct {
	grid   *Grid
	rules  *Ruleset
	poss   *SliceInterner[uint32]
	weight *SliceInterner[uint32]

	possBuf   []TileId
	weightBuf []uint32
	queue     []Position

	log *zap.Logger
}

// IDFull and IDEmpty are the reserved sentinel ids: for possibilities,
// the initial full domain and the empty (contradiction) set
// respectively; for weights, the initial per-tile score vector and the
// "collapsed/frozen" sentinel respectively. They must be interned first,
// in this order, which NewPropagator does.
const (
	IDFull  Id[uint32] = 0
	IDEmpty Id[uint32] = 1
)

// NewPropagator builds a Propagator over rules. It seeds both interners
// with the full domain (Possible()) at id 0 and the empty sequence at id 1,
// in that order: violating this order silently breaks updateTile's
// change detection and the contradiction test (new id == IDEmpty).
func NewPropagator(rules *Ruleset, log *zap.Logger) *Propagator {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Propagator{
		grid:   NewGrid(),
		rules:  rules,
		poss:   NewSliceInterner[uint32](),
		weight: NewSliceInterner[uint32](),
		log:    log,
	}

	fullPoss, fullWeights := rules.Possible()
	if id := p.poss.Identify(fullPoss); id != IDFull {
		panic("wfc: internal invariant violated: full possibility set did not intern as IDFull")
	}
	if id := p.poss.Identify(nil); id != IDEmpty {
		panic("wfc: internal invariant violated: empty possibility set did not intern as IDEmpty")
	}
	if id := p.weight.Identify(fullWeights); id != IDFull {
		panic("wfc: internal invariant violated: full weight vector did not intern as IDFull")
	}
	if id := p.weight.Identify(nil); id != IDEmpty {
		panic("wfc: internal invariant violated: empty weight vector did not intern as IDEmpty")
	}
	return p
}

// possibilitiesOf returns the possibility set (interned id resolved to a
// slice) for pos: its own entry if present, otherwise the full domain.
func (p *Propagator) possibilitiesOf(pos Position) []TileId {
	if c, ok := p.grid.get(pos); ok {
		return p.poss.Get(c.poss)
	}
	return p.poss.Get(IDFull)
}

// updateTile re-derives pos's remaining possibilities from its 8-neighbor
// possibility sets and commits the result if it changed. It reports
// changed=true when the cell's stored ids moved, and returns
// ErrContradiction when the recomputed possibility set is empty.
func (p *Propagator) updateTile(pos Position) (changed bool, err error) {
	var neighbors [8][]TileId
	for i := 0; i < 8; i++ {
		neighbors[i] = p.possibilitiesOf(pos.neighbor(i))
	}

	existing, present := p.grid.get(pos)
	var center []TileId
	if present {
		center = p.poss.Get(existing.poss)
	} else {
		center = p.poss.Get(IDFull)
	}

	p.rules.Check(center, neighbors, &p.possBuf, &p.weightBuf)
	newPossID := p.poss.Identify(p.possBuf)
	newWeightID := p.weight.Identify(p.weightBuf)

	if present {
		changed = newPossID != existing.poss || (newWeightID != existing.weight && existing.weight == IDEmpty)
		if !changed {
			return false, nil
		}
		if newPossID == IDEmpty {
			return false, ErrContradiction
		}
		p.grid.set(pos, cell{poss: newPossID, weight: newWeightID})
		return true, nil
	}

	changed = newPossID != IDFull || newWeightID != IDFull
	if !changed {
		return false, nil
	}
	if newPossID == IDEmpty {
		return false, ErrContradiction
	}
	p.grid.set(pos, cell{poss: newPossID, weight: newWeightID})
	return true, nil
}

// propagateAround pushes pos's 8 neighbors onto the worklist and drains it,
// re-running updateTile on each popped position and pushing its neighbors
// in turn whenever it changed, until the worklist empties (a fixed point)
// or a contradiction surfaces.
func (p *Propagator) propagateAround(pos Position) error {
	p.queue = p.queue[:0]
	for i := 0; i < 8; i++ {
		p.queue = append(p.queue, pos.neighbor(i))
	}

	for len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]

		changed, err := p.updateTile(next)
		if err != nil {
			return err
		}
		if changed {
			for i := 0; i < 8; i++ {
				p.queue = append(p.queue, next.neighbor(i))
			}
		}
	}
	return nil
}

// Chooser picks one possibility given the cell's current (possibilities,
// weights), or reports ok=false if no choice is possible.
type Chooser func(possibilities []TileId, weights []uint32) (choice TileId, ok bool)

// Collapse reduces the cell at pos to a single tile. If the cell is already
// down to at most one possibility, that possibility (or ErrContradiction if
// none) is returned directly. Otherwise chooser picks among the current
// possibilities and weights; chooser returning ok=false yields
// ErrContradiction. On a successful choice, the cell's possibility set
// becomes the singleton {chosen}, its weight id becomes IDEmpty (the
// frozen marker), and propagateAround runs from pos. A propagation failure
// is reported as *PropagateError{Attempted: chosen} so the caller knows
// which choice to forbid.
func (p *Propagator) Collapse(pos Position, chooser Chooser) (Possibility, error) {
	possibilities := p.possibilitiesOf(pos)
	if len(possibilities) <= 1 {
		if len(possibilities) == 0 {
			return 0, ErrContradiction
		}
		return possibilities[0], nil
	}

	weights := p.weight.Get(p.currentWeightID(pos))
	chosen, ok := chooser(possibilities, weights)
	if !ok {
		return 0, ErrContradiction
	}

	newPossID := p.poss.Identify([]TileId{chosen})
	p.grid.set(pos, cell{poss: newPossID, weight: IDEmpty})

	if err := p.propagateAround(pos); err != nil {
		p.log.Debug("collapse: propagation failed", zap.Uint32("attempted", chosen))
		return 0, &PropagateError{Attempted: chosen}
	}
	return chosen, nil
}

func (p *Propagator) currentWeightID(pos Position) Id[uint32] {
	if c, ok := p.grid.get(pos); ok {
		return c.weight
	}
	return IDFull
}

// EnsureImpossible removes tile from the possibility set at pos. If tile
// was not present, it is a no-op. If removing it empties the set,
// ErrContradiction is returned. Otherwise the new set is interned,
// updateTile runs locally to refresh the weight vector, and
// propagateAround runs from pos; a propagation failure is reported as
// ErrContradiction, a bare sentinel since there's no offending choice to
// carry here, unlike Collapse's richer PropagateError.
func (p *Propagator) EnsureImpossible(pos Position, tile Possibility) error {
	current := p.possibilitiesOf(pos)
	idx := -1
	for i, t := range current {
		if t == tile {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	reduced := make([]TileId, 0, len(current)-1)
	reduced = append(reduced, current[:idx]...)
	reduced = append(reduced, current[idx+1:]...)
	if len(reduced) == 0 {
		return ErrContradiction
	}

	newPossID := p.poss.Identify(reduced)
	existingWeight := p.currentWeightID(pos)
	p.grid.set(pos, cell{poss: newPossID, weight: existingWeight})

	if _, err := p.updateTile(pos); err != nil {
		return ErrContradiction
	}
	if err := p.propagateAround(pos); err != nil {
		return ErrContradiction
	}
	return nil
}

// Snapshot value-copies the Grid.
func (p *Propagator) Snapshot() Snapshot {
	return Snapshot{cells: p.grid.clone()}
}

// Restore value-replaces the Grid with snap's contents. Interners and
// scratch buffers are untouched: they are monotonic append-only state and
// per-call scratch, neither of which a Snapshot captures.
func (p *Propagator) Restore(snap Snapshot) {
	// clone defensively so a caller that keeps reusing `snap` across
	// repeated restores can't observe this Propagator's later mutations.
	cells := make(map[uint64]cell, len(snap.cells))
	for k, v := range snap.cells {
		cells[k] = v
	}
	p.grid.replace(cells)
}
