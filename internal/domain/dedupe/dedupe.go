// Package dedupe collapses external workout records that describe the
// same physical activity reported by more than one provider.
package dedupe

import (
	"math"

	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/internal/domain/model"
)

// Default tolerance for treating two reported distances as the same
// activity, in miles.
const defaultDistanceToleranceMiles = 0.05

// BatchDeduper removes cross-provider duplicates from a fetched batch.
//
// Two records are duplicates when they fall on the same calendar day,
// carry the same sport, and their distances differ by at most the
// tolerance. Duration is deliberately not compared: providers disagree on
// paused versus elapsed time, which would split true duplicates apart.
type BatchDeduper struct {
	distanceToleranceMiles float64
}

// NewBatchDeduper creates a deduper with configuration options.
func NewBatchDeduper(opts ...Option) *BatchDeduper {
	d := &BatchDeduper{
		distanceToleranceMiles: defaultDistanceToleranceMiles,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dedupe returns the batch with duplicates removed. Input order is
// preserved and must be ascending by start time; within a duplicate group
// the first record wins. Each record is compared only against records
// already accepted, which keeps the pass deterministic.
func (d *BatchDeduper) Dedupe(records []model.ExternalWorkoutRecord) []model.ExternalWorkoutRecord {
	kept := make([]model.ExternalWorkoutRecord, 0, len(records))
	for _, rec := range records {
		if !d.duplicateOfAny(kept, rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func (d *BatchDeduper) duplicateOfAny(accepted []model.ExternalWorkoutRecord, rec model.ExternalWorkoutRecord) bool {
	for _, a := range accepted {
		if a.Sport != rec.Sport {
			continue
		}
		if !calendar.SameDay(a.StartTime, rec.StartTime) {
			continue
		}
		if math.Abs(a.DistanceMiles()-rec.DistanceMiles()) <= d.distanceToleranceMiles {
			return true
		}
	}
	return false
}
