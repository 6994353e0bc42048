package wfc

import (
	"errors"
	"math/rand/v2"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// World orchestrates Get(x, y): it holds a Propagator, a SnapshotStore, and
// a seeded pseudo-random generator, and implements the collapse +
// backtrack generation protocol: pick a value, propagate, snapshot, and on
// contradiction restore and retry with the offending choice excluded.
//
// A World is not safe for concurrent use. Callers that want parallel
// generation should instantiate independent Worlds — see
// internal/parallel.Pool.
type World struct {
	prop  *Propagator
	store *SnapshotStore
	rng   *rand.Rand
	log   *zap.Logger
}

// Option configures a World at construction time.
type Option func(*World)

// WithLogger attaches a structured logger used for backtrack diagnostics.
// Without one, a no-op logger is used.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithSeed fixes the PRNG seed, making two Worlds built with the same rules,
// seed, and query sequence return identical tiles.
func WithSeed(seed uint64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// NewWorld builds a World from rules with the given snapshot stability
// (the per-tier capacity K of the SnapshotStore). Rules must densely cover
// 0..=max_center, every weight must be > 0, and Ruleset.Possible() must be
// non-empty for the seed state — NewPropagator panics if the sentinel ids
// can't be established, which can only happen if the ruleset can't even
// produce a non-empty full domain.
func NewWorld(rules []Rule, snapshotStability int, opts ...Option) *World {
	ruleset := NewRuleset(rules)
	w := &World{
		store: NewSnapshotStore(snapshotStability),
		rng:   rand.New(rand.NewPCG(1, 2)),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.prop = NewPropagator(ruleset, w.log)
	return w
}

// Get answers the point query: it returns the TileId at (x, y), running
// (and, if necessary, backtracking) the constraint-propagation engine
// until a consistent choice is found. Every call leaves the grid at a
// fixed point and pushes exactly one new snapshot.
//
// Get panics with an error ("wfc: impossible ruleset", or "wfc: impossible
// rules" when the exhaustion happens while forbidding a failed choice) if
// the SnapshotStore is exhausted while backtracking — either the ruleset
// is truly unsatisfiable, or
// snapshotStability is too small to recover far enough.
func (w *World) Get(x, y int32) TileId {
	pos := Position{X: x, Y: y}
	snap := w.prop.Snapshot()

	var result TileId
	for {
		tile, err := w.prop.Collapse(pos, w.weightedChoice())
		if err == nil {
			result = tile
			break
		}

		var propagateErr *PropagateError
		if errors.As(err, &propagateErr) {
			w.prop.Restore(snap)
			for w.prop.EnsureImpossible(pos, propagateErr.Attempted) != nil {
				var ok bool
				snap, ok = w.store.Pop()
				if !ok {
					w.panicImpossible("impossible rules")
				}
				w.prop.Restore(snap)
			}
			snap = w.prop.Snapshot()
			continue
		}

		// Plain ErrContradiction: the pre-choice state was already doomed.
		var ok bool
		snap, ok = w.store.Pop()
		if !ok {
			w.panicImpossible("impossible ruleset")
		}
		w.prop.Restore(snap)
	}

	w.store.Push(snap)
	return result
}

func (w *World) panicImpossible(msg string) {
	err := pkgerrors.New("wfc: " + msg)
	w.log.Error("generation failed: snapshot store exhausted", zap.Error(err))
	panic(err)
}

// weightedChoice builds a Chooser backed by w's PRNG: it sums the weights,
// draws r uniformly from [0, total), and returns the possibility at the
// first index where the running subtraction of r drops below that index's
// weight. It reports ok=false only if total == 0, which Ruleset.Check never
// produces for a non-empty possibility slice (every entry it keeps has a
// positive score by construction) but the signature honors it regardless.
func (w *World) weightedChoice() Chooser {
	return func(possibilities []TileId, weights []uint32) (TileId, bool) {
		var total uint32
		for _, wt := range weights {
			total += wt
		}
		if total == 0 {
			return 0, false
		}
		r := uint32(w.rng.Uint64N(uint64(total)))
		for i, wt := range weights {
			if r < wt {
				return possibilities[i], true
			}
			r -= wt
		}
		// Unreachable given total == sum(weights), kept as a safety net.
		return possibilities[len(possibilities)-1], true
	}
}
