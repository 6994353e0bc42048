package wfc

// TileId identifies a tile kind. Rules reference tiles by TileId, and a
// Possibility is just a TileId — the two concepts coincide, one tile kind
// being one possibility.
type TileId = uint32

// Possibility is a candidate tile for a cell. An alias of TileId: the
// data model treats them as the same concept.
type Possibility = TileId

// Rule asserts that center tile Tiles[4] is legal with score contribution
// Weight when each of the 8 neighbor slots (Tiles[0:4] and Tiles[5:9], row
// major, center skipped) is satisfied by the corresponding observed
// neighbor set.
type Rule struct {
	Tiles  [9]TileId
	Weight uint32
}

// Ruleset is a flattened table indexed by center TileId: for each center,
// a contiguous slice of 8-neighbor-tuples and a parallel slice of weights.
// Built once from a list of Rules via NewRuleset, grounded on
// original_source/src/rules.rs's Rules.
type Ruleset struct {
	surrounds [][8]TileId
	weights   []uint32
	starts    []int
}

// NewRuleset builds a Ruleset from rules, bucketing by center tile. Centers
// must densely cover 0..=max_center; gaps are permitted and leave an empty
// rule-list at the unused index.
func NewRuleset(rules []Rule) *Ruleset {
	var buckets [][]ruleEntry
	for _, r := range rules {
		center := int(r.Tiles[4])
		for len(buckets) <= center {
			buckets = append(buckets, nil)
		}
		var surround [8]TileId
		copy(surround[:4], r.Tiles[:4])
		copy(surround[4:], r.Tiles[5:])
		buckets[center] = append(buckets[center], ruleEntry{surround: surround, weight: r.Weight})
	}

	total := 0
	for _, b := range buckets {
		total += len(b)
	}

	rs := &Ruleset{
		surrounds: make([][8]TileId, 0, total),
		weights:   make([]uint32, 0, total),
		starts:    make([]int, 0, len(buckets)),
	}
	for _, b := range buckets {
		rs.starts = append(rs.starts, len(rs.surrounds))
		for _, e := range b {
			rs.surrounds = append(rs.surrounds, e.surround)
			rs.weights = append(rs.weights, e.weight)
		}
	}
	return rs
}

type ruleEntry struct {
	surround [8]TileId
	weight   uint32
}

// NumCenters returns the number of distinct center TileIds the ruleset
// covers (0..NumCenters-1), including any gaps left empty.
func (rs *Ruleset) NumCenters() int {
	return len(rs.starts)
}

// surroundsAndWeights returns the contiguous (neighbors, weight) slice for
// center. The end of the slice is starts[index+1] when it exists, or the
// total rule count otherwise. Using the same index for both start and end
// would always yield an empty slice, which is never the intended
// behavior — every center with rules must see its full neighbor set.
func (rs *Ruleset) surroundsAndWeights(center TileId) ([][8]TileId, []uint32) {
	index := int(center)
	start := rs.starts[index]
	end := len(rs.surrounds)
	if index+1 < len(rs.starts) {
		end = rs.starts[index+1]
	}
	return rs.surrounds[start:end], rs.weights[start:end]
}

// Check computes, for each candidate p in center, its local score — the
// sum of every rule's weight where p is the rule's center and every one of
// the rule's 8 neighbor slots names a tile present in the corresponding
// observed neighbor set. Candidates scoring 0 are dropped; the rest are
// appended (in center's input order) to outPossibilities, with their score
// appended to outWeights at the same index. Both output slices are reset
// (length 0, capacity reused) before being populated.
func (rs *Ruleset) Check(center []TileId, neighbors [8][]TileId, outPossibilities *[]TileId, outWeights *[]uint32) {
	*outPossibilities = (*outPossibilities)[:0]
	*outWeights = (*outWeights)[:0]

	for _, p := range center {
		surrounds, weights := rs.surroundsAndWeights(p)
		var score uint32
		for i, targets := range surrounds {
			matches := true
			for dir, target := range targets {
				if !containsTile(neighbors[dir], target) {
					matches = false
					break
				}
			}
			if matches {
				score += weights[i]
			}
		}
		if score > 0 {
			*outPossibilities = append(*outPossibilities, p)
			*outWeights = append(*outWeights, score)
		}
	}
}

func containsTile(set []TileId, t TileId) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

// Possible returns the "untouched cell" content: Check(allTiles,
// [allTiles]x8), where allTiles is every TileId the ruleset covers. This
// result must be interned first as IDFull for both the possibility and
// weight interners.
func (rs *Ruleset) Possible() (possibilities []TileId, weights []uint32) {
	all := make([]TileId, rs.NumCenters())
	for i := range all {
		all[i] = TileId(i)
	}
	var neighbors [8][]TileId
	for i := range neighbors {
		neighbors[i] = all
	}
	rs.Check(all, neighbors, &possibilities, &weights)
	return possibilities, weights
}
