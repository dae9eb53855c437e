package engine

import (
	"time"

	. "fianchetto/pkg/chess"
)

// Search runs an iterative deepening search on the last position of the
// line. ok is false only when the side to move has no legal move at all,
// otherwise a move is always returned, even on a timeout.
func (e *Engine) Search(params SearchParams) (SearchResult, bool) {
	if len(params.Positions) == 0 || e.evaluator == nil {
		return SearchResult{}, false
	}
	e.start = time.Now()
	e.nodes = 0

	var depth = params.Depth
	if depth <= 0 {
		depth = e.Depth
	}
	depth = Min(depth, maxHeight)
	var timeLimit = params.TimeLimit
	if timeLimit <= 0 {
		timeLimit = e.TimeLimit
	}
	e.deadline = time.Time{}
	if timeLimit > 0 {
		e.deadline = e.start.Add(timeLimit)
	}

	e.Prepare()
	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(params.Positions)

	var p = params.Positions[len(params.Positions)-1]
	var rootMoves = p.GenerateLegalMoves()
	if len(rootMoves) == 0 {
		return SearchResult{}, false
	}
	if _, _, _, ttMove, ok := e.transTable.Read(p.Key); ok {
		moveToBegin(rootMoves, findMoveIndex(rootMoves, ttMove))
	}

	var result = SearchResult{Move: rootMoves[0]}
	for d := 1; d <= depth; d++ {
		if !e.deadline.IsZero() && time.Now().After(e.deadline) {
			break
		}
		var score, move, mainLine, completed = e.searchDepth(&p, rootMoves, d)
		if !completed {
			break
		}
		result.Move = move
		result.MainLine = mainLine
		result.Score = score
		result.Depth = d
		moveToBegin(rootMoves, findMoveIndex(rootMoves, move))
		if score > valueMateThreshold || score < -valueMateThreshold {
			break
		}
	}
	result.Nodes = e.nodes
	result.Time = time.Since(e.start)
	return result, true
}

// searchDepth finishes one root iteration, completed is false when the
// deadline cut it short and the scores cannot be trusted.
func (e *Engine) searchDepth(p *Position, rootMoves []Move, depth int) (score int, move Move, mainLine []Move, completed bool) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				completed = false
				return
			}
			panic(r)
		}
	}()

	var alpha = -valueInfinity
	var best = -valueInfinity
	var bestMove Move
	e.stack[0].pv.clear()
	e.stack[0].key = p.Key
	var u Undo
	for _, m := range rootMoves {
		if !p.MakeMove(m, &u) {
			continue
		}
		var v = -e.alphaBeta(p, -valueInfinity, -alpha, depth-1, 1)
		p.UnmakeMove(m, &u)
		if v > best {
			best = v
			bestMove = m
			e.stack[0].pv.assign(m, &e.stack[1].pv)
		}
		if v > alpha {
			alpha = v
		}
	}
	e.transTable.Update(p.Key, depth, valueToTT(best, 0), boundExact, bestMove)
	return best, bestMove, e.stack[0].pv.toSlice(), true
}

// main search method
func (e *Engine) alphaBeta(p *Position, alpha, beta, depth, height int) int {
	if depth <= 0 {
		return e.quiescence(p, alpha, beta, height, 0)
	}
	e.incNodes()
	e.stack[height].pv.clear()
	e.stack[height].key = p.Key

	if height >= maxHeight {
		return e.evaluator.Evaluate(p)
	}

	if p.Rule50 >= 100 || e.isRepeat(p, height) {
		return valueDraw
	}

	var ttMove = MoveEmpty
	if ttDepth, ttScore, ttBound, move, ok := e.transTable.Read(p.Key); ok {
		ttMove = move
		if ttDepth >= depth {
			var ttValue = valueFromTT(ttScore, height)
			if ttBound == boundExact ||
				(ttBound&boundLower) != 0 && ttValue >= beta ||
				(ttBound&boundUpper) != 0 && ttValue <= alpha {
				return ttValue
			}
		}
	}

	var entry = &e.stack[height]
	var moves = p.GenerateMoves(entry.buffer[:])
	for i := range moves {
		entry.moveList[i] = OrderedMove{Move: moves[i]}
	}
	var ml = entry.moveList[:len(moves)]
	e.scoreMoves(p, ml, ttMove, height)
	sortMoves(ml)

	var oldAlpha = alpha
	var best = -valueInfinity
	var bestMove = MoveEmpty
	var hasLegalMove = false
	var u Undo
	for i := range ml {
		var move = ml[i].Move
		if !p.MakeMove(move, &u) {
			continue
		}
		hasLegalMove = true
		var score = -e.alphaBeta(p, -beta, -alpha, depth-1, height+1)
		p.UnmakeMove(move, &u)
		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			entry.pv.assign(move, &e.stack[height+1].pv)
			if alpha >= beta {
				if !isCaptureOrPromotion(move) {
					e.updateKiller(move, height)
					e.history.Update(p.SideToMove, move, depth)
				}
				break
			}
		}
	}

	if !hasLegalMove {
		if p.IsCheck() {
			return lossIn(height)
		}
		return valueDraw
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	e.transTable.Update(p.Key, depth, valueToTT(best, height), bound, bestMove)
	return best
}

const maxQDepth = 10

// quiescence settles the horizon by playing out captures only. The side
// to move may always stand pat on the static evaluation.
func (e *Engine) quiescence(p *Position, alpha, beta, height, qdepth int) int {
	e.incNodes()
	e.stack[height].pv.clear()
	var eval = e.evaluator.Evaluate(p)
	if height >= maxHeight || qdepth >= maxQDepth {
		return eval
	}
	var best = eval
	if best > alpha {
		alpha = best
		if alpha >= beta {
			return best
		}
	}

	var entry = &e.stack[height]
	var moves = p.GenerateCaptures(entry.buffer[:])
	for i := range moves {
		entry.moveList[i] = OrderedMove{Move: moves[i]}
	}
	var ml = entry.moveList[:len(moves)]
	scoreCaptures(ml)
	sortMoves(ml)

	var u Undo
	for i := range ml {
		var move = ml[i].Move
		if !p.MakeMove(move, &u) {
			continue
		}
		var score = -e.quiescence(p, -beta, -alpha, height+1, qdepth+1)
		p.UnmakeMove(move, &u)
		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
	}
	return best
}

func (e *Engine) incNodes() {
	e.nodes++
	if e.nodes&255 == 0 && !e.deadline.IsZero() && time.Now().After(e.deadline) {
		panic(errSearchTimeout)
	}
}

// isRepeat spots a repetition of the current position, either earlier in
// the search line or twice in the played game.
func (e *Engine) isRepeat(p *Position, height int) bool {
	for i := height - 2; i >= 0 && i >= height-p.Rule50; i -= 2 {
		if e.stack[i].key == p.Key {
			return true
		}
	}
	return e.historyKeys[p.Key] >= 2
}

func (e *Engine) updateKiller(move Move, height int) {
	if e.stack[height].killer1 != move {
		e.stack[height].killer2 = e.stack[height].killer1
		e.stack[height].killer1 = move
	}
}
