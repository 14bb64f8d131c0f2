// Package reconcile matches externally sourced workout records against
// locally logged workouts and produces the mutations to apply.
package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/internal/domain/model"
)

// Default matching tolerances.
const (
	// defaultDurationTolerance is the relative duration tolerance: a local
	// workout matches when its duration is within 5% of the record's.
	defaultDurationTolerance = 0.05
	// defaultDurationFloorHours keeps the relative test meaningful for
	// near-zero durations.
	defaultDurationFloorHours = 0.01
	// defaultDistanceToleranceMiles is the absolute distance tolerance.
	defaultDistanceToleranceMiles = 0.05
	// defaultBridgeName names the import bridge in note annotations.
	defaultBridgeName = "Health"
)

// Result summarizes one reconciliation pass. Upserts are emitted in the
// order the external records were processed; the caller applies them as a
// single batch or not at all.
type Result struct {
	Upserts  []model.Upsert
	Imported int
	Inserted int
	Updated  int
}

// Matcher decides, per external record, whether it corresponds to an
// already-logged workout (update) or is new (insert).
type Matcher struct {
	durationTolerance      float64
	durationFloorHours     float64
	distanceToleranceMiles float64
	bridgeName             string
}

// NewMatcher creates a matcher with configuration options.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		durationTolerance:      defaultDurationTolerance,
		durationFloorHours:     defaultDurationFloorHours,
		distanceToleranceMiles: defaultDistanceToleranceMiles,
		bridgeName:             defaultBridgeName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reconcile processes the deduplicated external batch against a snapshot
// of the local collection. It is a pure function: the snapshot is not
// mutated, all effects are returned as upserts.
//
// The pass is idempotent. A record whose external ID is already attached
// to a local workout is skipped, so re-importing the same range is a
// no-op. A workout already linked to a record is never a match candidate
// for a different record, and a workout consumed by one record cannot
// match a second record in the same pass.
func (m *Matcher) Reconcile(external []model.ExternalWorkoutRecord, local []model.Workout) Result {
	seen := make(map[string]struct{}, len(local))
	consumed := make(map[string]struct{})
	for _, w := range local {
		if w.ExternalSourceID != "" {
			seen[w.ExternalSourceID] = struct{}{}
			// A linked workout belongs to its record; another record must
			// not steal it and displace the link.
			consumed[w.ID] = struct{}{}
		}
	}

	var res Result
	for _, rec := range external {
		if !rec.Sport.Supported() {
			// The source filters these upstream; a stray record is
			// skipped without counting.
			continue
		}
		if _, ok := seen[rec.ExternalID]; ok {
			continue
		}
		seen[rec.ExternalID] = struct{}{}

		if idx, ok := m.findCandidate(rec, local, consumed); ok {
			w := local[idx]
			consumed[w.ID] = struct{}{}
			res.Upserts = append(res.Upserts, model.NewUpdate(w.ID, m.overwrite(rec, w)))
			res.Updated++
		} else {
			res.Upserts = append(res.Upserts, model.NewInsert(m.newWorkout(rec)))
			res.Inserted++
		}
		res.Imported++
	}
	return res
}

// findCandidate scans local workouts in their stable iteration order and
// returns the index of the first not-yet-consumed workout matching rec.
func (m *Matcher) findCandidate(rec model.ExternalWorkoutRecord, local []model.Workout, consumed map[string]struct{}) (int, bool) {
	for i, w := range local {
		if _, done := consumed[w.ID]; done {
			continue
		}
		if w.Sport != rec.Sport {
			continue
		}
		if !calendar.SameDay(w.Date, rec.StartTime) {
			continue
		}
		if !m.durationMatches(w.DurationHours, rec.DurationHours()) {
			continue
		}
		if math.Abs(w.DistanceMiles-rec.DistanceMiles()) > m.distanceToleranceMiles {
			continue
		}
		return i, true
	}
	return 0, false
}

// durationMatches applies the relative tolerance with a floor so that
// near-zero durations do not divide the tolerance away. The boundary is
// inclusive on both sides.
func (m *Matcher) durationMatches(localHours, recordHours float64) bool {
	scale := math.Max(localHours, math.Max(recordHours, m.durationFloorHours))
	return math.Abs(localHours-recordHours) <= m.durationTolerance*scale
}

// overwrite builds the update for a matched workout. The external record
// is authoritative for date, duration, and distance once matched.
func (m *Matcher) overwrite(rec model.ExternalWorkoutRecord, w model.Workout) model.WorkoutUpdate {
	date := rec.StartTime
	duration := rec.DurationHours()
	distance := rec.DistanceMiles()
	externalID := rec.ExternalID
	notes := m.mergeNotes(w.Notes, rec)
	return model.WorkoutUpdate{
		Date:             &date,
		DurationHours:    &duration,
		DistanceMiles:    &distance,
		ExternalSourceID: &externalID,
		Notes:            &notes,
	}
}

func (m *Matcher) newWorkout(rec model.ExternalWorkoutRecord) model.Workout {
	w := model.Workout{
		Date:             rec.StartTime,
		Sport:            rec.Sport,
		DurationHours:    rec.DurationHours(),
		DistanceMiles:    rec.DistanceMiles(),
		Notes:            m.annotation(rec),
		ExternalSourceID: rec.ExternalID,
	}
	w.Normalize()
	return w
}

// mergeNotes replaces blank notes with the annotation; otherwise the
// annotation is prepended above the existing notes with a blank line.
func (m *Matcher) mergeNotes(existing string, rec model.ExternalWorkoutRecord) string {
	annotation := m.annotation(rec)
	if strings.TrimSpace(existing) == "" {
		return annotation
	}
	return annotation + "\n\n" + existing
}

func (m *Matcher) annotation(rec model.ExternalWorkoutRecord) string {
	return fmt.Sprintf("Imported from %s. Source: %s", m.bridgeName, ProviderDisplayName(rec.SourceProvider))
}

// ProviderDisplayName normalizes well-known provider names for note
// annotations. Anything else passes through as reported.
func ProviderDisplayName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "strava"):
		return "Strava"
	case strings.Contains(lower, "garmin"):
		return "Garmin"
	default:
		return name
	}
}
