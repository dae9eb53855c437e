package game

import (
	"fianchetto/pkg/chess"
)

// Outcome classifies a finished game.
type Outcome int

const (
	OutcomeCheckmate Outcome = iota + 1
	OutcomeStalemate
	OutcomeFiftyMoveRule
	OutcomeThreefoldRepetition
	OutcomeInsufficientMaterial
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCheckmate:
		return "checkmate"
	case OutcomeStalemate:
		return "stalemate"
	case OutcomeFiftyMoveRule:
		return "fifty-move rule"
	case OutcomeThreefoldRepetition:
		return "threefold repetition"
	case OutcomeInsufficientMaterial:
		return "insufficient material"
	}
	return "unknown"
}

func (o Outcome) IsDraw() bool {
	return o != OutcomeCheckmate
}

// Result of a finished game. Winner is meaningful for checkmate only.
type Result struct {
	Outcome Outcome
	Winner  chess.Color
}

// Game holds a line of play from the initial position. Every position in
// the line is a snapshot, a rejected move never changes any of them.
type Game struct {
	positions []chess.Position
	moves     []chess.Move
}

func NewGame() *Game {
	var g = &Game{}
	g.Reset()
	return g
}

// Reset starts over from the initial position.
func (g *Game) Reset() {
	g.positions = []chess.Position{chess.InitialPosition()}
	g.moves = nil
}

// Position returns a copy of the current position.
func (g *Game) Position() chess.Position {
	return g.positions[len(g.positions)-1]
}

// Positions returns a copy of the whole line, oldest first.
func (g *Game) Positions() []chess.Position {
	return append([]chess.Position(nil), g.positions...)
}

// Moves returns a copy of the moves played so far.
func (g *Game) Moves() []chess.Move {
	return append([]chess.Move(nil), g.moves...)
}

func (g *Game) LegalMoves() []chess.Move {
	var p = g.Position()
	return p.GenerateLegalMoves()
}

// MakeMove plays the legal move matching from, to and promotion and
// reports whether one matched. Anything else leaves the game untouched.
func (g *Game) MakeMove(from, to chess.Square, promotion int) bool {
	var p = g.Position()
	for _, legal := range p.GenerateLegalMoves() {
		if legal.From == from && legal.To == to && legal.Promotion == promotion {
			var u chess.Undo
			p.MakeMove(legal, &u)
			g.positions = append(g.positions, p)
			g.moves = append(g.moves, legal)
			return true
		}
	}
	return false
}

// Result reports how the game ended, if it has. Checkmate and stalemate
// are checked before the draw rules, a mated side gets no fifty-move
// escape.
func (g *Game) Result() (Result, bool) {
	var p = g.Position()
	if len(p.GenerateLegalMoves()) == 0 {
		if p.IsCheck() {
			return Result{Outcome: OutcomeCheckmate, Winner: p.SideToMove.Opposite()}, true
		}
		return Result{Outcome: OutcomeStalemate}, true
	}
	if p.Rule50 >= 100 {
		return Result{Outcome: OutcomeFiftyMoveRule}, true
	}
	if g.repetitionCount(p.Key) >= 3 {
		return Result{Outcome: OutcomeThreefoldRepetition}, true
	}
	if insufficientMaterial(&p) {
		return Result{Outcome: OutcomeInsufficientMaterial}, true
	}
	return Result{}, false
}

func (g *Game) repetitionCount(key uint64) int {
	var count = 0
	for i := range g.positions {
		if g.positions[i].Key == key {
			count++
		}
	}
	return count
}

// Bare kings, or one minor piece beside the kings, cannot force mate.
func insufficientMaterial(p *chess.Position) bool {
	var minors = 0
	for sq := chess.SquareA1; sq <= chess.SquareH8; sq++ {
		switch p.PieceAt(sq).Kind() {
		case chess.Empty, chess.King:
		case chess.Knight, chess.Bishop:
			minors++
		default:
			return false
		}
	}
	return minors <= 1
}
