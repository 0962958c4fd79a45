package patrol

import "errors"

// Patrol configuration errors.
var (
	ErrDimensionMismatch    = errors.New("map dimensions do not match grid size")
	ErrNoPassableTerrain    = errors.New("no passable terrain to place rangers on")
	ErrInvalidConfiguration = errors.New("invalid patrol configuration")
)
