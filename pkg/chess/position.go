package chess

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Position is a full board state. The scalar fields are free to read,
// the board itself changes only through MakeMove and UnmakeMove.
type Position struct {
	board          [64]Piece
	kings          [2]Square
	SideToMove     Color
	CastleRights   int
	EpSquare       Square
	Rule50         int
	FullmoveNumber int
	Key            uint64
}

// Undo keeps what MakeMove cannot recompute when taking a move back.
type Undo struct {
	castleRights int
	epSquare     Square
	rule50       int
	key          uint64
}

func (p *Position) PieceAt(sq Square) Piece {
	return p.board[sq]
}

func (p *Position) King(side Color) Square {
	return p.kings[side]
}

func (p *Position) InCheck(side Color) bool {
	return p.IsSquareAttacked(p.kings[side], side.Opposite())
}

func (p *Position) IsCheck() bool {
	return p.InCheck(p.SideToMove)
}

func createPosition(board [64]Piece, sideToMove Color, castleRights int,
	epSquare Square, rule50, fullmoveNumber int) (Position, error) {
	var p = Position{
		board:          board,
		SideToMove:     sideToMove,
		CastleRights:   castleRights,
		EpSquare:       epSquare,
		Rule50:         rule50,
		FullmoveNumber: fullmoveNumber,
	}
	p.kings[White] = SquareNone
	p.kings[Black] = SquareNone
	for sq := SquareA1; sq <= SquareH8; sq++ {
		switch board[sq] {
		case WhiteKing:
			p.kings[White] = sq
		case BlackKing:
			p.kings[Black] = sq
		}
	}
	if p.kings[White] == SquareNone || p.kings[Black] == SquareNone {
		return Position{}, fmt.Errorf("king missing")
	}
	if p.InCheck(sideToMove.Opposite()) {
		return Position{}, fmt.Errorf("side not to move is in check")
	}
	p.Key = p.computeKey()
	return p, nil
}

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Split(fen, " ")
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("invalid fen %q", fen)
	}

	var board [64]Piece
	var i = 0
	for _, ch := range tokens[0] {
		if ch == '/' {
			continue
		}
		if ch >= '1' && ch <= '8' {
			i += int(ch - '0')
			continue
		}
		var piece = parsePiece(ch)
		if piece == Empty || i >= 64 {
			return Position{}, fmt.Errorf("invalid fen %q", fen)
		}
		board[FlipSquare(Square(i))] = piece
		i++
	}

	var sideToMove Color
	switch tokens[1] {
	case "w":
		sideToMove = White
	case "b":
		sideToMove = Black
	default:
		return Position{}, fmt.Errorf("invalid fen %q", fen)
	}

	var castleRights = 0
	if strings.Contains(tokens[2], "K") {
		castleRights |= WhiteKingSide
	}
	if strings.Contains(tokens[2], "Q") {
		castleRights |= WhiteQueenSide
	}
	if strings.Contains(tokens[2], "k") {
		castleRights |= BlackKingSide
	}
	if strings.Contains(tokens[2], "q") {
		castleRights |= BlackQueenSide
	}

	var epSquare = ParseSquare(tokens[3])

	var rule50 = 0
	if len(tokens) > 4 {
		rule50, _ = strconv.Atoi(tokens[4])
	}
	var fullmoveNumber = 1
	if len(tokens) > 5 {
		if n, err := strconv.Atoi(tokens[5]); err == nil && n > 0 {
			fullmoveNumber = n
		}
	}

	return createPosition(board, sideToMove, castleRights, epSquare, rule50, fullmoveNumber)
}

func InitialPosition() Position {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the position in FEN.
func (p *Position) String() string {
	var sb strings.Builder
	var emptyCount = 0
	for i := 0; i < 64; i++ {
		var sq = FlipSquare(Square(i))
		var piece = p.board[sq]
		if piece == Empty {
			emptyCount++
		} else {
			if emptyCount > 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceChar(piece))
		}
		if sq.File() == FileH {
			if emptyCount > 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if sq.Rank() != Rank1 {
				sb.WriteByte('/')
			}
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastleRights&WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.CastleRights&WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.CastleRights&BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.CastleRights&BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.EpSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))
	return sb.String()
}

const pieceNames = "pnbrqk"

func parsePiece(ch rune) Piece {
	var side = White
	if ch >= 'a' && ch <= 'z' {
		side = Black
	}
	var i = strings.IndexRune(pieceNames, ch|0x20)
	if i < 0 {
		return Empty
	}
	return MakePiece(i+Pawn, side)
}

func pieceChar(piece Piece) byte {
	var ch = pieceNames[piece.Kind()-Pawn]
	if piece.Side() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// MakeMove applies a move in place and reports whether it was legal.
// An illegal move, one that leaves the mover's king attacked, is taken
// back before returning so the position never holds a broken state.
func (p *Position) MakeMove(m Move, u *Undo) bool {
	u.castleRights = p.CastleRights
	u.epSquare = p.EpSquare
	u.rule50 = p.Rule50
	u.key = p.Key

	var us = p.SideToMove
	var them = us.Opposite()

	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[p.EpSquare.File()]
		p.EpSquare = SquareNone
	}

	if m.EnPassant {
		p.removePiece(m.To + let(us == White, -8, 8))
	} else if m.Captured != Empty {
		p.removePiece(m.To)
	}

	p.movePiece(m.From, m.To)

	if m.Promotion != Empty {
		p.removePiece(m.To)
		p.setPiece(m.To, MakePiece(m.Promotion, us))
	}

	switch m.Castling {
	case KingSide:
		p.movePiece(m.To+1, m.To-1)
	case QueenSide:
		p.movePiece(m.To-2, m.To+1)
	}

	if m.Moved.Kind() == King {
		p.kings[us] = m.To
	}

	p.CastleRights &= castleMask[m.From] & castleMask[m.To]
	p.Key ^= castlingKey[u.castleRights^p.CastleRights]

	if m.Moved.Kind() == Pawn {
		if RankDistance(m.From, m.To) == 2 {
			p.EpSquare = (m.From + m.To) / 2
			p.Key ^= enpassantKey[p.EpSquare.File()]
		}
		p.Rule50 = 0
	} else if m.Captured != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}

	if us == Black {
		p.FullmoveNumber++
	}
	p.SideToMove = them
	p.Key ^= sideKey

	if p.IsSquareAttacked(p.kings[us], them) {
		p.UnmakeMove(m, u)
		return false
	}
	return true
}

// UnmakeMove takes back the last made move.
func (p *Position) UnmakeMove(m Move, u *Undo) {
	var them = p.SideToMove
	var us = them.Opposite()

	p.board[m.From] = m.Moved
	p.board[m.To] = Empty
	if m.EnPassant {
		p.board[m.To+let(us == White, -8, 8)] = MakePiece(Pawn, them)
	} else if m.Captured != Empty {
		p.board[m.To] = m.Captured
	}

	switch m.Castling {
	case KingSide:
		p.board[m.To+1] = p.board[m.To-1]
		p.board[m.To-1] = Empty
	case QueenSide:
		p.board[m.To-2] = p.board[m.To+1]
		p.board[m.To+1] = Empty
	}

	if m.Moved.Kind() == King {
		p.kings[us] = m.From
	}

	if us == Black {
		p.FullmoveNumber--
	}
	p.SideToMove = us
	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Key = u.key
}

func (p *Position) movePiece(from, to Square) {
	var piece = p.board[from]
	p.board[from] = Empty
	p.board[to] = piece
	p.Key ^= pieceSquareKey[int(piece)*64+int(from)] ^
		pieceSquareKey[int(piece)*64+int(to)]
}

func (p *Position) setPiece(sq Square, piece Piece) {
	p.board[sq] = piece
	p.Key ^= pieceSquareKey[int(piece)*64+int(sq)]
}

func (p *Position) removePiece(sq Square) {
	var piece = p.board[sq]
	p.board[sq] = Empty
	p.Key ^= pieceSquareKey[int(piece)*64+int(sq)]
}

var (
	knightOffsets = [8][2]int{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	bishopDirections = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirections   = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

func squareOnBoard(rank, file int) bool {
	return rank >= Rank1 && rank <= Rank8 && file >= FileA && file <= FileH
}

// IsSquareAttacked reports whether a side attacks a square.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	var rank = sq.Rank()
	var file = sq.File()

	var pawnRank = rank - 1
	if by == Black {
		pawnRank = rank + 1
	}
	for df := -1; df <= 1; df += 2 {
		if squareOnBoard(pawnRank, file+df) &&
			p.board[MakeSquare(file+df, pawnRank)] == MakePiece(Pawn, by) {
			return true
		}
	}

	for _, d := range knightOffsets {
		var r, f = rank+d[0], file+d[1]
		if squareOnBoard(r, f) && p.board[MakeSquare(f, r)] == MakePiece(Knight, by) {
			return true
		}
	}

	for _, d := range kingOffsets {
		var r, f = rank+d[0], file+d[1]
		if squareOnBoard(r, f) && p.board[MakeSquare(f, r)] == MakePiece(King, by) {
			return true
		}
	}

	for _, d := range rookDirections {
		if p.attackedAlong(sq, by, d[0], d[1], Rook) {
			return true
		}
	}
	for _, d := range bishopDirections {
		if p.attackedAlong(sq, by, d[0], d[1], Bishop) {
			return true
		}
	}
	return false
}

func (p *Position) attackedAlong(sq Square, by Color, dr, df int, slider int) bool {
	for r, f := sq.Rank()+dr, sq.File()+df; squareOnBoard(r, f); r, f = r+dr, f+df {
		var piece = p.board[MakeSquare(f, r)]
		if piece == Empty {
			continue
		}
		if piece.Side() == by {
			var kind = piece.Kind()
			if kind == slider || kind == Queen {
				return true
			}
		}
		return false
	}
	return false
}

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [16 * 64]uint64
	castleMask     [64]int
)

func (p *Position) computeKey() uint64 {
	var key = castlingKey[p.CastleRights]
	if p.SideToMove == White {
		key ^= sideKey
	}
	if p.EpSquare != SquareNone {
		key ^= enpassantKey[p.EpSquare.File()]
	}
	for sq := SquareA1; sq <= SquareH8; sq++ {
		var piece = p.board[sq]
		if piece != Empty {
			key ^= pieceSquareKey[int(piece)*64+int(sq)]
		}
	}
	return key
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}
	for i := range castlingKey {
		var key = uint64(0)
		for j := 0; j < 4; j++ {
			if i&(1<<j) != 0 {
				key ^= castle[j]
			}
		}
		castlingKey[i] = key
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}
}

func init() {
	initKeys()
	var allRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	for sq := range castleMask {
		castleMask[sq] = allRights
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteKingSide | WhiteQueenSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackKingSide | BlackQueenSide
	castleMask[SquareH8] &^= BlackKingSide
}

// MirrorPosition flips the board vertically and swaps the colors.
func MirrorPosition(p *Position) Position {
	var board [64]Piece
	for sq := SquareA1; sq <= SquareH8; sq++ {
		var piece = p.board[sq]
		if piece != Empty {
			board[FlipSquare(sq)] = MakePiece(piece.Kind(), piece.Side().Opposite())
		}
	}
	var castleRights = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	var epSquare = SquareNone
	if p.EpSquare != SquareNone {
		epSquare = FlipSquare(p.EpSquare)
	}
	var result, err = createPosition(board, p.SideToMove.Opposite(), castleRights,
		epSquare, p.Rule50, p.FullmoveNumber)
	if err != nil {
		panic(err)
	}
	return result
}
