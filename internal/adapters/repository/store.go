// Package repository defines the workout store contract and its
// implementations. The core computes mutations against a snapshot and
// applies them through this interface; it never owns persistence.
package repository

import (
	"context"

	"github.com/javy001/trainingplanner/internal/domain/model"
)

// Store provides read/write access to the local workout collection.
//
// ListWorkouts returns a snapshot in a stable iteration order (insertion
// order); the matcher's "first candidate" rule depends on it. The store
// is safe for concurrent readers with a single writer.
type Store interface {
	// ListWorkouts returns a snapshot of all workouts.
	ListWorkouts(ctx context.Context) ([]model.Workout, error)

	// GetWorkout returns a single workout, or ErrNotFound.
	GetWorkout(ctx context.Context, id string) (model.Workout, error)

	// Insert adds a workout, assigning an ID when the workout carries
	// none, and returns the stored value.
	Insert(ctx context.Context, w model.Workout) (model.Workout, error)

	// Update applies the set fields to an existing workout and returns
	// the updated value, or ErrNotFound.
	Update(ctx context.Context, id string, fields model.WorkoutUpdate) (model.Workout, error)

	// Delete removes a workout, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ApplyUpserts applies a reconciliation batch as a unit: either every
	// upsert is applied or none is.
	ApplyUpserts(ctx context.Context, upserts []model.Upsert) error

	// Count returns the number of stored workouts.
	Count(ctx context.Context) int
}
