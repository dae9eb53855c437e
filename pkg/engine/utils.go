package engine

import (
	"errors"

	. "fianchetto/pkg/chess"
)

const (
	stackSize     = 64
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 10000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin

	// scores beyond this are forced mates, deepening further is pointless
	valueMateThreshold = 9000
)

var errSearchTimeout = errors.New("search timeout")

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}

	if v <= valueLoss {
		return v - height
	}

	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}

	if v <= valueLoss {
		return v + height
	}

	return v
}

func isCaptureOrPromotion(move Move) bool {
	return move.Captured != Empty ||
		move.Promotion != Empty
}
