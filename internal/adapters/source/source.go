// Package source defines the contract for fetching externally tracked
// workouts, plus the HTTP bridge implementation used in deployment.
package source

import (
	"context"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
)

// Provider fetches external workout records for a date range.
//
// Implementations return only supported-sport records, sorted ascending
// by start time. There are no partial results: the call either yields the
// full set for the range or an error.
type Provider interface {
	FetchWorkouts(ctx context.Context, start, end time.Time) ([]model.ExternalWorkoutRecord, error)
}
