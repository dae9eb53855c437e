package chess

import (
	"testing"
)

func TestParseSquare(t *testing.T) {
	for sq := SquareA1; sq <= SquareH8; sq++ {
		if got := ParseSquare(sq.String()); got != sq {
			t.Error(sq, got)
		}
	}
	for _, s := range []string{"", "-", "e", "e9", "i1", "4e", "e44"} {
		if got := ParseSquare(s); got != SquareNone {
			t.Error(s, got)
		}
	}
}

func TestFlipSquare(t *testing.T) {
	if FlipSquare(SquareA1) != SquareA8 || FlipSquare(SquareE4) != SquareE5 {
		t.Error("flip broken")
	}
	for sq := SquareA1; sq <= SquareH8; sq++ {
		if FlipSquare(FlipSquare(sq)) != sq {
			t.Error(sq)
		}
	}
}

func TestSquareDistance(t *testing.T) {
	var tests = []struct {
		a, b Square
		dist int
	}{
		{SquareA1, SquareA1, 0},
		{SquareA1, SquareH8, 7},
		{SquareA1, SquareB3, 2},
		{SquareE4, SquareE5, 1},
		{SquareH1, SquareA1, 7},
	}
	for i, test := range tests {
		if got := SquareDistance(test.a, test.b); got != test.dist {
			t.Error(i, test, got)
		}
	}
}

func TestSquaresBetween(t *testing.T) {
	var tests = []struct {
		from, to Square
		want     []Square
	}{
		{SquareA1, SquareD1, []Square{SquareB1, SquareC1}},
		{SquareD1, SquareA1, []Square{SquareC1, SquareB1}},
		{SquareA1, SquareD4, []Square{SquareB2, SquareC3}},
		{SquareA1, SquareA2, nil},
		{SquareA1, SquareB3, nil},
		{SquareA1, SquareA1, nil},
		{SquareE1, SquareE8, []Square{SquareE2, SquareE3, SquareE4, SquareE5, SquareE6, SquareE7}},
	}
	for i, test := range tests {
		var got = SquaresBetween(test.from, test.to)
		if len(got) != len(test.want) {
			t.Error(i, test, got)
			continue
		}
		for j := range got {
			if got[j] != test.want[j] {
				t.Error(i, test, got)
				break
			}
		}
	}
}
