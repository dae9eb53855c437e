package chess

var (
	whiteKingSideCastle  = Move{From: SquareE1, To: SquareG1, Moved: WhiteKing, Castling: KingSide}
	whiteQueenSideCastle = Move{From: SquareE1, To: SquareC1, Moved: WhiteKing, Castling: QueenSide}
	blackKingSideCastle  = Move{From: SquareE8, To: SquareG8, Moved: BlackKing, Castling: KingSide}
	blackQueenSideCastle = Move{From: SquareE8, To: SquareC8, Moved: BlackKing, Castling: QueenSide}
)

// GenerateMoves fills ml with the pseudo-legal moves of the side to move
// and returns the filled prefix. Moves that leave the own king attacked
// are still included, MakeMove rejects them.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var count = 0
	var us = p.SideToMove
	for from := SquareA1; from <= SquareH8; from++ {
		var piece = p.board[from]
		if piece == Empty || piece.Side() != us {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			count = p.genPawnMoves(ml, count, from)
		case Knight:
			count = p.genOffsetMoves(ml, count, from, knightOffsets[:])
		case Bishop:
			count = p.genSlidingMoves(ml, count, from, bishopDirections[:])
		case Rook:
			count = p.genSlidingMoves(ml, count, from, rookDirections[:])
		case Queen:
			count = p.genSlidingMoves(ml, count, from, rookDirections[:])
			count = p.genSlidingMoves(ml, count, from, bishopDirections[:])
		case King:
			count = p.genOffsetMoves(ml, count, from, kingOffsets[:])
			count = p.genCastlingMoves(ml, count)
		}
	}
	return ml[:count]
}

func (p *Position) genPawnMoves(ml []Move, count int, from Square) int {
	var us = p.SideToMove
	var pawn = p.board[from]
	var dr = 1
	var startRank = Rank2
	var promotionRank = Rank8
	if us == Black {
		dr = -1
		startRank = Rank7
		promotionRank = Rank1
	}

	var rank = from.Rank()
	var file = from.File()

	if squareOnBoard(rank+dr, file) {
		var to = MakeSquare(file, rank+dr)
		if p.board[to] == Empty {
			if to.Rank() == promotionRank {
				count = addPromotions(ml, count, Move{From: from, To: to, Moved: pawn})
			} else {
				ml[count] = Move{From: from, To: to, Moved: pawn}
				count++
				if rank == startRank {
					var to2 = MakeSquare(file, rank+2*dr)
					if p.board[to2] == Empty {
						ml[count] = Move{From: from, To: to2, Moved: pawn}
						count++
					}
				}
			}
		}
	}

	for df := -1; df <= 1; df += 2 {
		if !squareOnBoard(rank+dr, file+df) {
			continue
		}
		var to = MakeSquare(file+df, rank+dr)
		var target = p.board[to]
		if target != Empty && target.Side() != us {
			if to.Rank() == promotionRank {
				count = addPromotions(ml, count, Move{From: from, To: to, Moved: pawn, Captured: target})
			} else {
				ml[count] = Move{From: from, To: to, Moved: pawn, Captured: target}
				count++
			}
		} else if to == p.EpSquare {
			ml[count] = Move{From: from, To: to, Moved: pawn,
				Captured: MakePiece(Pawn, us.Opposite()), EnPassant: true}
			count++
		}
	}
	return count
}

func addPromotions(ml []Move, count int, m Move) int {
	for _, kind := range [...]int{Queen, Rook, Bishop, Knight} {
		m.Promotion = kind
		ml[count] = m
		count++
	}
	return count
}

func (p *Position) genOffsetMoves(ml []Move, count int, from Square, offsets [][2]int) int {
	var us = p.SideToMove
	var piece = p.board[from]
	for _, d := range offsets {
		var r, f = from.Rank()+d[0], from.File()+d[1]
		if !squareOnBoard(r, f) {
			continue
		}
		var to = MakeSquare(f, r)
		var target = p.board[to]
		if target == Empty {
			ml[count] = Move{From: from, To: to, Moved: piece}
			count++
		} else if target.Side() != us {
			ml[count] = Move{From: from, To: to, Moved: piece, Captured: target}
			count++
		}
	}
	return count
}

func (p *Position) genSlidingMoves(ml []Move, count int, from Square, directions [][2]int) int {
	var us = p.SideToMove
	var piece = p.board[from]
	for _, d := range directions {
		for r, f := from.Rank()+d[0], from.File()+d[1]; squareOnBoard(r, f); r, f = r+d[0], f+d[1] {
			var to = MakeSquare(f, r)
			var target = p.board[to]
			if target == Empty {
				ml[count] = Move{From: from, To: to, Moved: piece}
				count++
				continue
			}
			if target.Side() != us {
				ml[count] = Move{From: from, To: to, Moved: piece, Captured: target}
				count++
			}
			break
		}
	}
	return count
}

func (p *Position) genCastlingMoves(ml []Move, count int) int {
	if p.SideToMove == White {
		if p.CastleRights&WhiteKingSide != 0 &&
			p.board[SquareE1] == WhiteKing && p.board[SquareH1] == WhiteRook &&
			p.board[SquareF1] == Empty && p.board[SquareG1] == Empty &&
			!p.IsSquareAttacked(SquareE1, Black) && !p.IsSquareAttacked(SquareF1, Black) {
			ml[count] = whiteKingSideCastle
			count++
		}
		if p.CastleRights&WhiteQueenSide != 0 &&
			p.board[SquareE1] == WhiteKing && p.board[SquareA1] == WhiteRook &&
			p.board[SquareB1] == Empty && p.board[SquareC1] == Empty && p.board[SquareD1] == Empty &&
			!p.IsSquareAttacked(SquareE1, Black) && !p.IsSquareAttacked(SquareD1, Black) {
			ml[count] = whiteQueenSideCastle
			count++
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 &&
			p.board[SquareE8] == BlackKing && p.board[SquareH8] == BlackRook &&
			p.board[SquareF8] == Empty && p.board[SquareG8] == Empty &&
			!p.IsSquareAttacked(SquareE8, White) && !p.IsSquareAttacked(SquareF8, White) {
			ml[count] = blackKingSideCastle
			count++
		}
		if p.CastleRights&BlackQueenSide != 0 &&
			p.board[SquareE8] == BlackKing && p.board[SquareA8] == BlackRook &&
			p.board[SquareB8] == Empty && p.board[SquareC8] == Empty && p.board[SquareD8] == Empty &&
			!p.IsSquareAttacked(SquareE8, White) && !p.IsSquareAttacked(SquareD8, White) {
			ml[count] = blackQueenSideCastle
			count++
		}
	}
	return count
}

// GenerateCaptures fills ml with the pseudo-legal capturing moves only.
// Capturing promotions promote to a queen, the underpromotions add
// nothing when the capture itself is the point.
func (p *Position) GenerateCaptures(ml []Move) []Move {
	var count = 0
	var us = p.SideToMove
	for from := SquareA1; from <= SquareH8; from++ {
		var piece = p.board[from]
		if piece == Empty || piece.Side() != us {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			count = p.genPawnCaptures(ml, count, from)
		case Knight:
			count = p.genOffsetCaptures(ml, count, from, knightOffsets[:])
		case Bishop:
			count = p.genSlidingCaptures(ml, count, from, bishopDirections[:])
		case Rook:
			count = p.genSlidingCaptures(ml, count, from, rookDirections[:])
		case Queen:
			count = p.genSlidingCaptures(ml, count, from, rookDirections[:])
			count = p.genSlidingCaptures(ml, count, from, bishopDirections[:])
		case King:
			count = p.genOffsetCaptures(ml, count, from, kingOffsets[:])
		}
	}
	return ml[:count]
}

func (p *Position) genPawnCaptures(ml []Move, count int, from Square) int {
	var us = p.SideToMove
	var pawn = p.board[from]
	var dr = 1
	var promotionRank = Rank8
	if us == Black {
		dr = -1
		promotionRank = Rank1
	}
	var rank = from.Rank()
	var file = from.File()
	for df := -1; df <= 1; df += 2 {
		if !squareOnBoard(rank+dr, file+df) {
			continue
		}
		var to = MakeSquare(file+df, rank+dr)
		var target = p.board[to]
		if target != Empty && target.Side() != us {
			var m = Move{From: from, To: to, Moved: pawn, Captured: target}
			if to.Rank() == promotionRank {
				m.Promotion = Queen
			}
			ml[count] = m
			count++
		} else if to == p.EpSquare {
			ml[count] = Move{From: from, To: to, Moved: pawn,
				Captured: MakePiece(Pawn, us.Opposite()), EnPassant: true}
			count++
		}
	}
	return count
}

func (p *Position) genOffsetCaptures(ml []Move, count int, from Square, offsets [][2]int) int {
	var us = p.SideToMove
	var piece = p.board[from]
	for _, d := range offsets {
		var r, f = from.Rank()+d[0], from.File()+d[1]
		if !squareOnBoard(r, f) {
			continue
		}
		var to = MakeSquare(f, r)
		var target = p.board[to]
		if target != Empty && target.Side() != us {
			ml[count] = Move{From: from, To: to, Moved: piece, Captured: target}
			count++
		}
	}
	return count
}

func (p *Position) genSlidingCaptures(ml []Move, count int, from Square, directions [][2]int) int {
	var us = p.SideToMove
	var piece = p.board[from]
	for _, d := range directions {
		for r, f := from.Rank()+d[0], from.File()+d[1]; squareOnBoard(r, f); r, f = r+d[0], f+d[1] {
			var to = MakeSquare(f, r)
			var target = p.board[to]
			if target == Empty {
				continue
			}
			if target.Side() != us {
				ml[count] = Move{From: from, To: to, Moved: piece, Captured: target}
				count++
			}
			break
		}
	}
	return count
}

// GenerateLegalMoves collects the fully legal moves of the side to move.
func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]Move
	var result []Move
	var u Undo
	for _, m := range p.GenerateMoves(buffer[:]) {
		if p.MakeMove(m, &u) {
			p.UnmakeMove(m, &u)
			result = append(result, m)
		}
	}
	return result
}

// Perft counts the leaf nodes of the legal move tree to a fixed depth.
func Perft(p *Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var result int64
	var buffer [MaxMoves]Move
	var u Undo
	for _, m := range p.GenerateMoves(buffer[:]) {
		if p.MakeMove(m, &u) {
			if depth > 1 {
				result += Perft(p, depth-1)
			} else {
				result++
			}
			p.UnmakeMove(m, &u)
		}
	}
	return result
}
