package chess

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Color of a side, White moves first.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece kinds.
const (
	Pawn = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece packs a kind and a color. Empty marks an unoccupied square.
type Piece int8

const Empty = 0

const (
	WhitePawn   Piece = Pawn
	WhiteKnight Piece = Knight
	WhiteBishop Piece = Bishop
	WhiteRook   Piece = Rook
	WhiteQueen  Piece = Queen
	WhiteKing   Piece = King
	BlackPawn   Piece = Pawn | blackFlag
	BlackKnight Piece = Knight | blackFlag
	BlackBishop Piece = Bishop | blackFlag
	BlackRook   Piece = Rook | blackFlag
	BlackQueen  Piece = Queen | blackFlag
	BlackKing   Piece = King | blackFlag
)

const blackFlag = 1 << 3

func MakePiece(kind int, side Color) Piece {
	return Piece(kind) | Piece(side)<<3
}

func (p Piece) Kind() int {
	return int(p) & (blackFlag - 1)
}

func (p Piece) Side() Color {
	return Color(p >> 3)
}

// Castle rights flags.
const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// CastlingSide marks a move as castling.
type CastlingSide int8

const (
	NoCastling CastlingSide = iota
	KingSide
	QueenSide
)

const MaxMoves = 256

// OrderedMove carries a sort key alongside a move.
type OrderedMove struct {
	Move Move
	Key  int
}
