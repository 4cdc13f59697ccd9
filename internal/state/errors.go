package state

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidMineBudget = errors.New("invalid mine budget")
	ErrInvalidTimeLimit  = errors.New("invalid time limit")
)
