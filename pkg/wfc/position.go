package wfc

// Position is a 2D integer coordinate. Positions are unbounded in practice
// (32-bit signed in each direction) — the grid they index is sparse and
// lazily expanding.
type Position struct {
	X, Y int32
}

// key packs a Position into a single uint64 for use as a map key: bitwise
// OR of the shifted x with the zero-extended y. This is a bijection for
// 32-bit-range coordinates; using AND instead would lose information,
// since every (0, y) would collide with every (x, 0) at key 0.
func (p Position) key() uint64 {
	return uint64(uint32(p.X))<<32 | uint64(uint32(p.Y))
}

// neighborOffsets are the 8 neighbors of a cell in row-major order, the
// center skipped — the same ordering rules' tiles[0..4] and tiles[5..9]
// slots use.
var neighborOffsets = [8]Position{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0} /* center skipped */, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

func (p Position) neighbor(i int) Position {
	o := neighborOffsets[i]
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}
