package engine

import "time"

// Difficulty selects a search preset.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

type difficultyPreset struct {
	depth          int
	timeLimit      time.Duration
	useOpeningBook bool
	useTablebase   bool
}

var difficultyPresets = map[Difficulty]difficultyPreset{
	DifficultyEasy:   {depth: 2, timeLimit: 1 * time.Second},
	DifficultyMedium: {depth: 3, timeLimit: 3 * time.Second},
	DifficultyHard:   {depth: 4, timeLimit: 5 * time.Second, useOpeningBook: true},
	DifficultyExpert: {depth: 5, timeLimit: 10 * time.Second, useOpeningBook: true, useTablebase: true},
}

// SetDifficulty switches the engine to a named preset and reports
// whether the name was known. The opening book and tablebase switches
// are carried in the presets but nothing consults them yet.
func (e *Engine) SetDifficulty(d Difficulty) bool {
	var preset, ok = difficultyPresets[d]
	if !ok {
		return false
	}
	e.difficulty = d
	e.Depth = preset.depth
	e.TimeLimit = preset.timeLimit
	e.useOpeningBook = preset.useOpeningBook
	e.useTablebase = preset.useTablebase
	return true
}

func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}
