package engine

import (
	"runtime"
	"time"

	. "fianchetto/pkg/chess"
)

// Engine searches for the best move in a position. It is not safe for
// concurrent use, every instance owns its caches and reuses them from
// search to search.
type Engine struct {
	Hash      int
	Depth     int
	TimeLimit time.Duration

	difficulty     Difficulty
	useOpeningBook bool
	useTablebase   bool

	evaluator   IEvaluator
	transTable  *transTable
	history     historyTable
	historyKeys map[uint64]int
	stack       [stackSize]searchStack
	nodes       int64
	start       time.Time
	deadline    time.Time
}

type searchStack struct {
	buffer   [MaxMoves]Move
	moveList [MaxMoves]OrderedMove
	pv       pv
	killer1  Move
	killer2  Move
	key      uint64
}

type pv struct {
	items [stackSize]Move
	size  int
}

// SearchParams hands the engine the line of play. The last position is
// searched, the earlier ones only feed repetition detection. Depth and
// TimeLimit override the engine's difficulty settings when positive.
type SearchParams struct {
	Positions []Position
	Depth     int
	TimeLimit time.Duration
}

type SearchResult struct {
	Move     Move
	MainLine []Move
	Score    int
	Depth    int
	Nodes    int64
	Time     time.Duration
}

type IEvaluator interface {
	Evaluate(p *Position) int
}

func NewEngine(evaluator IEvaluator) *Engine {
	var e = &Engine{
		Hash:      16,
		evaluator: evaluator,
	}
	e.SetDifficulty(DifficultyMedium)
	return e
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
}

func getHistoryKeys(positions []Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		var p = &positions[i]
		result[p.Key]++
		if p.Rule50 == 0 {
			break
		}
	}
	return result
}

// Clear drops the transposition table, killers and history, which
// otherwise carry over between searches.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	e.history.Clear()
	for i := range e.stack {
		e.stack[i].killer1 = MoveEmpty
		e.stack[i].killer2 = MoveEmpty
	}
}

func (e *Engine) Nodes() int64 {
	return e.nodes
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
