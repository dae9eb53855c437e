package chess

// Move describes a single move with enough detail to take it back.
// Promotion holds the piece kind promoted to, Empty for ordinary moves.
type Move struct {
	From      Square
	To        Square
	Moved     Piece
	Captured  Piece
	Promotion int
	Castling  CastlingSide
	EnPassant bool
}

var MoveEmpty = Move{}

const promotionNames = "nbrq"

// String renders the move in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var s = m.From.String() + m.To.String()
	if m.Promotion != Empty {
		s += string(promotionNames[m.Promotion-Knight])
	}
	return s
}

// ParsePromotion maps a lowercase promotion letter to a piece kind.
func ParsePromotion(s string) int {
	switch s {
	case "n":
		return Knight
	case "b":
		return Bishop
	case "r":
		return Rook
	case "q":
		return Queen
	}
	return Empty
}
