package eval

import (
	. "fianchetto/pkg/chess"
)

const (
	pawnValue   = 100
	knightValue = 320
	bishopValue = 330
	rookValue   = 500
	queenValue  = 900
	kingValue   = 20000
)

var materialValues = [King + 1]int{
	Pawn:   pawnValue,
	Knight: knightValue,
	Bishop: bishopValue,
	Rook:   rookValue,
	Queen:  queenValue,
	King:   kingValue,
}

const (
	doubledPawnPenalty        = 20
	isolatedPawnPenalty       = 15
	kingCentralizationPenalty = 10
)

// The tables read like a diagram, the first row is the eighth rank.
// White looks them up through FlipSquare, black directly.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var centerSquares = [...]Square{SquareD4, SquareE4, SquareD5, SquareE5}

// EvaluationService scores positions with material, piece placement and
// pawn structure. The score is from the side to move's point of view.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (s *EvaluationService) Evaluate(p *Position) int {
	var score = 0
	var pawnFiles [2][8]int

	for sq := SquareA1; sq <= SquareH8; sq++ {
		var piece = p.PieceAt(sq)
		if piece == Empty {
			continue
		}
		var kind = piece.Kind()
		if piece.Side() == White {
			score += materialValues[kind] + pieceSquareValue(kind, FlipSquare(sq))
			if kind == Pawn {
				pawnFiles[White][sq.File()]++
			}
		} else {
			score -= materialValues[kind] + pieceSquareValue(kind, sq)
			if kind == Pawn {
				pawnFiles[Black][sq.File()]++
			}
		}
	}

	score -= kingCentralization(p.King(White))
	score += kingCentralization(p.King(Black))

	score -= pawnStructurePenalty(&pawnFiles[White])
	score += pawnStructurePenalty(&pawnFiles[Black])

	if p.SideToMove == Black {
		score = -score
	}
	return score
}

func pieceSquareValue(kind int, sq Square) int {
	switch kind {
	case Pawn:
		return pawnPST[sq]
	case Knight:
		return knightPST[sq]
	case Bishop:
		return bishopPST[sq]
	case Rook:
		return rookPST[sq]
	case Queen:
		return queenPST[sq]
	case King:
		return kingPST[sq]
	}
	return 0
}

// A king drifting towards the middle of the board is exposed, the
// penalty grows the closer it stands to the four center squares.
func kingCentralization(sq Square) int {
	var dist = 3
	for _, c := range centerSquares {
		dist = Min(dist, SquareDistance(sq, c))
	}
	return kingCentralizationPenalty * (3 - dist)
}

func pawnStructurePenalty(files *[8]int) int {
	var penalty = 0
	for file := FileA; file <= FileH; file++ {
		var n = files[file]
		if n == 0 {
			continue
		}
		if n > 1 {
			penalty += doubledPawnPenalty * (n - 1)
		}
		var neighbors = 0
		if file > FileA {
			neighbors += files[file-1]
		}
		if file < FileH {
			neighbors += files[file+1]
		}
		if neighbors == 0 {
			penalty += isolatedPawnPenalty * n
		}
	}
	return penalty
}
