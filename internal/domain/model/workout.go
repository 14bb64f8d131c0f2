// Package model contains the domain records passed between layers.
package model

import (
	"time"

	"github.com/javy001/trainingplanner/internal/domain/sport"
	"github.com/javy001/trainingplanner/internal/domain/units"
)

// Workout is a locally logged workout in canonical units (hours, miles).
type Workout struct {
	ID               string      `json:"id"`
	Date             time.Time   `json:"date"`
	Sport            sport.Sport `json:"-"`
	SportName        string      `json:"sport"`
	DurationHours    float64     `json:"duration_hours"`
	DistanceMiles    float64     `json:"distance_miles"`
	Notes            string      `json:"notes,omitempty"`
	ExternalSourceID string      `json:"external_source_id,omitempty"`
}

// Normalize fills the redundant sport fields from whichever is set. Store
// implementations call it so both the enum and the persisted name agree.
func (w *Workout) Normalize() {
	if w.Sport == sport.Unknown && w.SportName != "" {
		w.Sport = sport.FromName(w.SportName)
	}
	if w.SportName == "" {
		w.SportName = w.Sport.String()
	}
}

// ExternalWorkoutRecord is a read-only workout reported by an external
// activity source. Records arrive sorted ascending by StartTime with only
// supported sports included.
type ExternalWorkoutRecord struct {
	ExternalID     string
	StartTime      time.Time
	EndTime        time.Time
	Sport          sport.Sport
	DistanceMeters float64
	SourceProvider string
}

// DurationHours derives the duration from the start/end interval.
func (r ExternalWorkoutRecord) DurationHours() float64 {
	return r.EndTime.Sub(r.StartTime).Hours()
}

// DistanceMiles converts the reported distance to the canonical unit.
// A missing distance is zero meters and stays zero miles.
func (r ExternalWorkoutRecord) DistanceMiles() float64 {
	return units.MetersToMiles(r.DistanceMeters)
}

// WorkoutUpdate carries a partial mutation of an existing workout. Nil
// fields are left untouched.
type WorkoutUpdate struct {
	Date             *time.Time
	Sport            *sport.Sport
	DurationHours    *float64
	DistanceMiles    *float64
	Notes            *string
	ExternalSourceID *string
}

// Apply copies the set fields onto w.
func (u WorkoutUpdate) Apply(w *Workout) {
	if u.Date != nil {
		w.Date = *u.Date
	}
	if u.Sport != nil {
		w.Sport = *u.Sport
		w.SportName = u.Sport.String()
	}
	if u.DurationHours != nil {
		w.DurationHours = *u.DurationHours
	}
	if u.DistanceMiles != nil {
		w.DistanceMiles = *u.DistanceMiles
	}
	if u.Notes != nil {
		w.Notes = *u.Notes
	}
	if u.ExternalSourceID != nil {
		w.ExternalSourceID = *u.ExternalSourceID
	}
}

// UpsertKind distinguishes the two reconciliation outcomes.
type UpsertKind int

const (
	// UpsertInsert creates a new workout from an external record.
	UpsertInsert UpsertKind = iota
	// UpsertUpdate overwrites an existing workout matched to a record.
	UpsertUpdate
)

// Upsert is one mutation produced by reconciliation. Inserts carry a full
// Workout; updates carry the target ID and the fields to overwrite.
type Upsert struct {
	Kind    UpsertKind
	Workout Workout       // insert payload
	ID      string        // update target
	Fields  WorkoutUpdate // update payload
}

// NewInsert builds an insert upsert.
func NewInsert(w Workout) Upsert {
	return Upsert{Kind: UpsertInsert, Workout: w}
}

// NewUpdate builds an update upsert.
func NewUpdate(id string, fields WorkoutUpdate) Upsert {
	return Upsert{Kind: UpsertUpdate, ID: id, Fields: fields}
}
