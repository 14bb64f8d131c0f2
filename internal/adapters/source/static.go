package source

import (
	"context"
	"sort"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
)

// StaticProvider serves a fixed record set, filtered per fetch range.
// Used by tests and the seeding tool.
type StaticProvider struct {
	records []model.ExternalWorkoutRecord
	err     error
}

// NewStaticProvider creates a provider over the given records.
func NewStaticProvider(records []model.ExternalWorkoutRecord) *StaticProvider {
	return &StaticProvider{records: records}
}

// NewFailingProvider creates a provider whose fetches always fail with err.
func NewFailingProvider(err error) *StaticProvider {
	return &StaticProvider{err: err}
}

// FetchWorkouts returns the configured records with start times inside
// [start, end], ascending.
func (p *StaticProvider) FetchWorkouts(ctx context.Context, start, end time.Time) ([]model.ExternalWorkoutRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.ExternalWorkoutRecord
	for _, r := range p.records {
		if r.StartTime.Before(start) || r.StartTime.After(end) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}
