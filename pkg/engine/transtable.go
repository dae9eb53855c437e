package engine

import (
	"unsafe"

	. "fianchetto/pkg/chess"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

type transEntry struct {
	key32 uint32
	move  Move
	score int16
	depth int8
	bound uint8
	date  uint16
}

var transEntrySize = int(unsafe.Sizeof(transEntry{}))

// transTable caches search results per position key. The size is fixed
// at construction, new entries push out stale or shallower ones.
type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint32
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / transEntrySize)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date++
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move Move, ok bool) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if entry.bound != 0 && entry.key32 == uint32(key>>32) {
		entry.date = tt.date
		depth = int(entry.depth)
		score = int(entry.score)
		bound = int(entry.bound)
		move = entry.move
		ok = true
	}
	return
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move Move) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	var replace bool
	if entry.bound == 0 {
		replace = true
	} else if entry.key32 == uint32(key>>32) {
		replace = depth >= int(entry.depth)-3 || bound == boundExact
	} else {
		replace = entry.date != tt.date ||
			depth >= int(entry.depth)
	}
	if replace {
		*entry = transEntry{
			key32: uint32(key >> 32),
			move:  move,
			score: int16(score),
			depth: int8(depth),
			bound: uint8(bound),
			date:  tt.date,
		}
	}
}
