package wfc

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Id is a stable integer handle identifying an interned sequence of T.
// Two ids compare equal (as plain integers) iff the underlying sequences
// they were allocated for are equal element-for-element. Ids are dense,
// starting at 0, and are never reassigned or invalidated.
type Id[T any] uint32

// integer is the set of element types SliceInterner can hash and store.
// Possibilities and weights are both sequences of uint32 in this package,
// but the constraint is kept general rather than hard-coded to uint32.
type integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint
}

// SliceInterner deduplicates variable-length sequences of small integers and
// returns stable, dense identifiers for them. Sequences are stored
// back-to-back in one contiguous buffer with parallel (start, length)
// arrays indexed by id, mirroring original_source/src/tiles.rs's
// UniqueSlices (concat_possibilities/starts/lens) rather than a map of
// individually-allocated slices.
//
// Lookups hash the candidate sequence with xxhash and walk a bucket of
// same-hash candidates for an exact element-wise match — the Go analogue
// of the original's AHashMap/FxHasher64-keyed map, chosen for the same
// reason: sequences here are short (bounded by the number of distinct tile
// kinds) and the hot path is the hash, not the comparison.
type SliceInterner[T integer] struct {
	buf     []T
	starts  []uint32
	lengths []uint16
	buckets map[uint64][]uint32 // hash -> ids with that hash
}

// NewSliceInterner returns an empty interner. Callers that need the
// IDFull/IDEmpty sentinel contract must call Identify with the full
// domain first and the empty sequence second, before interning anything
// else.
func NewSliceInterner[T integer]() *SliceInterner[T] {
	return &SliceInterner[T]{
		buckets: make(map[uint64][]uint32),
	}
}

func hashSeq[T integer](seq []T) uint64 {
	if len(seq) == 0 {
		return xxhash.Sum64(nil)
	}
	buf := make([]byte, 8*len(seq))
	for i, v := range seq {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return xxhash.Sum64(buf)
}

func (si *SliceInterner[T]) equalAt(id uint32, seq []T) bool {
	start := si.starts[id]
	length := int(si.lengths[id])
	if length != len(seq) {
		return false
	}
	stored := si.buf[start : int(start)+length]
	for i, v := range seq {
		if stored[i] != v {
			return false
		}
	}
	return true
}

// TryIdentify returns the id of seq if it has already been interned, and
// ok=false without allocating otherwise.
func (si *SliceInterner[T]) TryIdentify(seq []T) (id Id[T], ok bool) {
	h := hashSeq(seq)
	for _, candidate := range si.buckets[h] {
		if si.equalAt(candidate, seq) {
			return Id[T](candidate), true
		}
	}
	return 0, false
}

// Identify returns the existing id for seq if known, or allocates the next
// dense id, records seq, and returns it. Idempotent: Identify(a) always
// returns the same id for element-wise-equal a.
func (si *SliceInterner[T]) Identify(seq []T) Id[T] {
	if id, ok := si.TryIdentify(seq); ok {
		return id
	}

	id := uint32(len(si.starts))
	start := uint32(len(si.buf))

	si.starts = append(si.starts, start)
	si.lengths = append(si.lengths, uint16(len(seq)))
	si.buf = append(si.buf, seq...)

	h := hashSeq(seq)
	si.buckets[h] = append(si.buckets[h], id)

	return Id[T](id)
}

// Get returns a view over the sequence interned as id. Passing an id this
// interner never allocated is a caller bug: it panics via a Go slice
// out-of-range fault rather than returning an error.
func (si *SliceInterner[T]) Get(id Id[T]) []T {
	start := si.starts[id]
	length := int(si.lengths[id])
	return si.buf[start : int(start)+length]
}

// Len reports how many distinct sequences have been interned.
func (si *SliceInterner[T]) Len() int {
	return len(si.starts)
}
