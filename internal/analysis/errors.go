package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidate indicates no record has the hardest difficulty class.
	ErrNoCandidate = errors.New("no candidate mountain")
	// ErrUnknownDifficulty indicates a difficulty label outside the class table.
	ErrUnknownDifficulty = errors.New("unknown difficulty label")
	// ErrUnderdetermined indicates too few distinct points to fit a line.
	ErrUnderdetermined = errors.New("regression needs at least two distinct x values")
)

// UnknownDifficultyError names the record carrying an unmapped label.
type UnknownDifficultyError struct {
	Row      int
	Mountain string
	Label    string
}

func (e *UnknownDifficultyError) Error() string {
	return fmt.Sprintf("row %d (%s): %v: %q", e.Row, e.Mountain, ErrUnknownDifficulty, e.Label)
}

func (e *UnknownDifficultyError) Unwrap() error { return ErrUnknownDifficulty }
