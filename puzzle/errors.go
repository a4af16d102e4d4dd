package puzzle

import "errors"

var (
	// ErrInvalidOrientation indicates text that names neither orientation.
	ErrInvalidOrientation = errors.New("puzzle: orientation must be H or V")
	// ErrOutOfRange indicates a word whose last cell lies past math.MaxUint.
	ErrOutOfRange = errors.New("puzzle: word runs past the coordinate range")
	// ErrTooLarge indicates a grid with more cells than MaxRenderCells.
	ErrTooLarge = errors.New("puzzle: grid too large to render")
)
