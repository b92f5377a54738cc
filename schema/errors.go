package schema

import "errors"

// Structural errors abort a ranking before any partial result exists.
var (
	// ErrEmptyInput means no non-empty source table was supplied.
	ErrEmptyInput = errors.New("no non-empty source table supplied")

	// ErrMissingKeyColumn means a non-empty source table lacks the key column.
	ErrMissingKeyColumn = errors.New("source table is missing the key column")

	// ErrZeroWeightSum means the three group weights add up to zero.
	ErrZeroWeightSum = errors.New("group weights sum to zero")

	// ErrInvalidWeight means a group weight is negative or not finite.
	ErrInvalidWeight = errors.New("group weight must be a finite, non-negative number")
)
