package repository

import "errors"

var (
	// ErrNotFound indicates that no workout exists with the given ID.
	ErrNotFound = errors.New("workout not found")

	// ErrInvalidWorkout indicates a workout that cannot be stored, for
	// example an insert that duplicates an existing ID.
	ErrInvalidWorkout = errors.New("invalid workout")
)
