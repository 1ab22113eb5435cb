package models

import "errors"

// Custom errors
var (
	ErrInvalidStake   = errors.New("stake must be positive")
	ErrInvalidPrice   = errors.New("decimal price must be greater than 1.0")
	ErrInvalidOutcome = errors.New("wager can only settle as won or lost")
	ErrAlreadySettled = errors.New("wager already settled")
	ErrWagerNotFound  = errors.New("wager not found")
	ErrNotFound       = errors.New("record not found")
	ErrMissingColumn  = errors.New("missing required column")
)
