package engine

import . "fianchetto/pkg/chess"

const historyMax = 1 << 14

// historyTable accumulates a weight per side and from-to pair for quiet
// moves that caused cutoffs. When a counter hits the cap the whole table
// is halved so old lines slowly lose their pull.
type historyTable [2 * 64 * 64]int

func sideFromToIndex(side Color, move Move) int {
	var result = (int(move.From) << 6) | int(move.To)
	if side == Black {
		result |= 1 << 12
	}
	return result
}

func (h *historyTable) Score(side Color, move Move) int {
	return h[sideFromToIndex(side, move)]
}

func (h *historyTable) Update(side Color, move Move, depth int) {
	var index = sideFromToIndex(side, move)
	h[index] += depth * depth
	if h[index] >= historyMax {
		for i := range h {
			h[i] /= 2
		}
	}
}

func (h *historyTable) Clear() {
	for i := range h {
		h[i] = 0
	}
}
