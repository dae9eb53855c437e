package chess

import "strings"

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// Square indexes the board from A1=0 to H8=63, rank by rank.
type Square int

const SquareNone Square = -1

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

func MakeSquare(file, rank int) Square {
	return Square((rank << 3) | file)
}

func FlipSquare(sq Square) Square {
	return sq ^ 56
}

func (sq Square) File() int {
	return int(sq) & 7
}

func (sq Square) Rank() int {
	return int(sq) >> 3
}

func (sq Square) IsValid() bool {
	return sq >= SquareA1 && sq <= SquareH8
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func FileDistance(sq1, sq2 Square) int {
	return AbsDelta(sq1.File(), sq2.File())
}

func RankDistance(sq1, sq2 Square) int {
	return AbsDelta(sq1.Rank(), sq2.Rank())
}

// SquareDistance is the number of king steps between two squares.
func SquareDistance(sq1, sq2 Square) int {
	return Max(FileDistance(sq1, sq2), RankDistance(sq1, sq2))
}

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	var file = fileNames[sq.File()]
	var rank = rankNames[sq.Rank()]
	return string(file) + string(rank)
}

func ParseSquare(s string) Square {
	if len(s) != 2 {
		return SquareNone
	}
	var file = strings.Index(fileNames, s[0:1])
	var rank = strings.Index(rankNames, s[1:2])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}

// SquaresBetween lists the squares strictly between two aligned squares,
// ordered from the first towards the second. Squares that do not share a
// rank, file or diagonal have nothing between them.
func SquaresBetween(from, to Square) []Square {
	if !from.IsValid() || !to.IsValid() || from == to {
		return nil
	}
	var fd = to.File() - from.File()
	var rd = to.Rank() - from.Rank()
	if fd != 0 && rd != 0 && AbsDelta(fd, 0) != AbsDelta(rd, 0) {
		return nil
	}
	var df = sign(fd)
	var dr = sign(rd)
	var result []Square
	for f, r := from.File()+df, from.Rank()+dr; ; f, r = f+df, r+dr {
		var sq = MakeSquare(f, r)
		if sq == to {
			return result
		}
		result = append(result, sq)
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
