package chess

import (
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestInitialMoves(t *testing.T) {
	var p = InitialPosition()
	var moves = p.GenerateLegalMoves()
	if len(moves) != 20 {
		t.Error(len(moves), moves)
	}
}

func TestGenerateMovesMatchesReference(t *testing.T) {
	for i, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Error(i, fen, err)
			continue
		}
		var got = legalMoveString(&p)
		var board = dragontoothmg.ParseFen(fen)
		var want = referenceMoveString(&board)
		if got != want {
			t.Error(i, fen, got, want)
		}
	}
}

func TestPerftMatchesReference(t *testing.T) {
	for i, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Error(i, fen, err)
			continue
		}
		var board = dragontoothmg.ParseFen(fen)
		var got = Perft(&p, 3)
		var want = dragontoothmg.Perft(&board, 3)
		if got != want {
			t.Error(i, fen, got, want)
		}
	}
}

func TestGenerateCapturesAreCaptures(t *testing.T) {
	for i, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Error(i, fen, err)
			continue
		}
		var buffer [MaxMoves]Move
		var all = make(map[Move]bool)
		for _, m := range p.GenerateMoves(buffer[:]) {
			all[m] = true
		}
		for _, m := range p.GenerateCaptures(buffer[:]) {
			if m.Captured == Empty {
				t.Error(i, fen, m.String(), "quiet move among captures")
			}
			if m.Promotion != Empty && m.Promotion != Queen {
				t.Error(i, fen, m.String(), "unexpected underpromotion")
			}
			if !all[m] {
				t.Error(i, fen, m.String(), "capture missing from the full list")
			}
		}
	}
}

func legalMoveString(p *Position) string {
	var moves = p.GenerateLegalMoves()
	var items = make([]string, 0, len(moves))
	for _, m := range moves {
		items = append(items, m.String())
	}
	sort.Strings(items)
	return strings.Join(items, " ")
}

func referenceMoveString(board *dragontoothmg.Board) string {
	var moves = board.GenerateLegalMoves()
	var items = make([]string, 0, len(moves))
	for _, m := range moves {
		items = append(items, m.String())
	}
	sort.Strings(items)
	return strings.Join(items, " ")
}

var testFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	// Kiwipete: https://www.chessprogramming.org/Perft_Results
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	// Underpromotion: http://www.stmintz.com/ccc/index.php?id=366606
	"8/p1P5/P7/3p4/5p1p/3p1P1P/K2p2pp/3R2nk w - - 0 1",
	// Enpassant: http://www.10x8.net/chess/PerfT.html
	"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
	"1K1k4/8/5n2/3p4/8/1BN2B2/6b1/7b w - - 0 1",
	"6k1/5ppp/3r4/8/3R2b1/8/5PPP/R3qB1K b - - 0 1",
	"2rqkb1r/p1pnpppp/3p3n/3B4/2BPP3/1QP5/PP3PPP/RN2K1NR w KQk - 0 1",
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	"1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1",
	"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1",
	"8/8/3p4/4r3/2RKP3/5k2/8/8 b - - 0 1",
	// Pinned piece can give check
	"r2qk2r/pppb1ppp/2np4/1Bb5/4n3/5N2/PPP2PPP/RNBQR1K1 b kq - 1 1",
	"8/K5p1/1P1k1p1p/5P1P/2R3P1/8/8/8 b - - 0 78",
	"8/1P6/5ppp/3k1P1P/6P1/8/1K6/8 w - - 0 78",
	"r1bqkb1r/ppp1pp2/2n3P1/3p4/3Pn3/5N1P/PPP1PPB1/RNBQK2R b KQkq - 0 1",
	"r3kb2/ppp2pp1/6n1/7Q/8/2P1BN1b/1q2PPB1/3R1K1R b q - 0 1",
	"r7/1p4p1/2p2kb1/3r4/3N3n/4P2P/1p2BP2/3RK1R1 w - - 0 1",
	"8/1p2k1p1/4P3/8/1p2N3/4P3/5P2/3BK3 b - - 0 1",
	"r1bk3r/ppp2p1p/4pp2/4n3/1b2P3/2N5/PPP2PPP/R3KBNR w KQ - 0 9",
	"rnb1kbnr/pp1ppppp/8/1q6/2PpP3/5N2/PP3PPP/RNBQ1K1R b kq c3 0 6",
	"1r2k2r/p5bp/4p1p1/q2pB1N1/6P1/6QP/1P6/2KR3R b k - 0 1",
	"6k1/Qp1r1pp1/p1rP3p/P3q3/2Bnb1P1/1P3PNP/4p1K1/R1R5 b - - 0 1",
	"r3r3/bpp1Nk1p/p1bq1Bp1/5p2/PPP3n1/R7/3QBPPP/5RK1 w - - 0 1",
	"5kn1/7P/8/8/8/8/8/4K3 w - - 0 1",
	"rnbqk3/p7/2P5/1B6/8/8/8/4K3 w q - 0 1",
	"rr2r1k1/ppBb1ppp/8/4p1NQ/8/1qB3B1/PP4PP/R5K1 w - - 0 1",
}
