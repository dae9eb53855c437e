package engine

import . "fianchetto/pkg/chess"

var pieceValues = [King + 1]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

const (
	sortTableKeyImportant = 100000
	promotionBonus        = 800
)

// mvvlva prefers juicy victims grabbed by cheap attackers.
func mvvlva(move Move) int {
	var score = 10*pieceValues[move.Captured.Kind()] - pieceValues[move.Moved.Kind()]
	if move.Promotion != Empty {
		score += promotionBonus
	}
	return score
}

func (e *Engine) scoreMoves(p *Position, ml []OrderedMove, transMove Move, height int) {
	var killer1 = e.stack[height].killer1
	var killer2 = e.stack[height].killer2
	for i := range ml {
		var m = ml[i].Move
		var key int
		switch {
		case m == transMove:
			key = sortTableKeyImportant + 2000
		case isCaptureOrPromotion(m):
			key = sortTableKeyImportant + 1000 + mvvlva(m)
		case m == killer1:
			key = sortTableKeyImportant + 1
		case m == killer2:
			key = sortTableKeyImportant
		default:
			key = e.history.Score(p.SideToMove, m)
		}
		ml[i].Key = key
	}
}

func scoreCaptures(ml []OrderedMove) {
	for i := range ml {
		ml[i].Key = mvvlva(ml[i].Move)
	}
}

func sortMoves(ml []OrderedMove) {
	for i := 1; i < len(ml); i++ {
		var item = ml[i]
		var j = i
		for ; j > 0 && ml[j-1].Key < item.Key; j-- {
			ml[j] = ml[j-1]
		}
		ml[j] = item
	}
}

func findMoveIndex(ml []Move, move Move) int {
	for i := range ml {
		if ml[i] == move {
			return i
		}
	}
	return -1
}

func moveToBegin(ml []Move, index int) {
	if index <= 0 {
		return
	}
	var m = ml[index]
	for i := index; i > 0; i-- {
		ml[i] = ml[i-1]
	}
	ml[0] = m
}
