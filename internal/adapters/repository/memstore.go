package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/pkg/metrics"
)

// MemoryStore is an in-memory Store keeping workouts in insertion order.
// It is the default backend and the one the test tooling exercises.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*model.Workout

	newID func() string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		byID:  make(map[string]*model.Workout),
		newID: func() string { return uuid.New().String() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListWorkouts returns a snapshot of all workouts in insertion order.
func (s *MemoryStore) ListWorkouts(_ context.Context) ([]model.Workout, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Workout, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}

	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))

	return out, nil
}

// GetWorkout returns the workout with the given ID.
func (s *MemoryStore) GetWorkout(_ context.Context, id string) (model.Workout, error) {
	const op = "memstore.GetWorkout"

	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.byID[id]
	if !ok {
		return model.Workout{}, fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
	}

	return *w, nil
}

// Insert stores a new workout. An empty ID is replaced with a generated
// one; a duplicate ID is rejected.
func (s *MemoryStore) Insert(_ context.Context, w model.Workout) (model.Workout, error) {
	const op = "memstore.Insert"

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.insertLocked(w)
	if err != nil {
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(len(s.order))

	return stored, nil
}

// Update applies the set fields to an existing workout.
func (s *MemoryStore) Update(_ context.Context, id string, fields model.WorkoutUpdate) (model.Workout, error) {
	const op = "memstore.Update"

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.byID[id]
	if !ok {
		return model.Workout{}, fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
	}

	fields.Apply(w)
	w.Normalize()

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))

	return *w, nil
}

// Delete removes the workout with the given ID.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	const op = "memstore.Delete"

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
	}

	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(len(s.order))

	return nil
}

// ApplyUpserts applies a reconciliation batch under a single lock so
// readers never observe a half-applied import.
func (s *MemoryStore) ApplyUpserts(_ context.Context, upserts []model.Upsert) error {
	const op = "memstore.ApplyUpserts"

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch up front so a bad batch leaves the store
	// untouched: update targets must exist, preset insert IDs must be
	// free and unique within the batch.
	pending := make(map[string]struct{})
	for _, u := range upserts {
		switch u.Kind {
		case model.UpsertInsert:
			if u.Workout.ID == "" {
				continue
			}
			_, exists := s.byID[u.Workout.ID]
			if _, dup := pending[u.Workout.ID]; exists || dup {
				return fmt.Errorf("%s: %w: duplicate id %s", op, ErrInvalidWorkout, u.Workout.ID)
			}
			pending[u.Workout.ID] = struct{}{}
		case model.UpsertUpdate:
			if _, ok := s.byID[u.ID]; !ok {
				return fmt.Errorf("%s: %w: %s", op, ErrNotFound, u.ID)
			}
		}
	}

	for _, u := range upserts {
		switch u.Kind {
		case model.UpsertInsert:
			if _, err := s.insertLocked(u.Workout); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		case model.UpsertUpdate:
			w := s.byID[u.ID]
			u.Fields.Apply(w)
			w.Normalize()
		}
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(len(s.order))

	return nil
}

// Count returns the number of stored workouts.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

func (s *MemoryStore) insertLocked(w model.Workout) (model.Workout, error) {
	if w.ID == "" {
		w.ID = s.newID()
	}
	if _, exists := s.byID[w.ID]; exists {
		return model.Workout{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidWorkout, w.ID)
	}

	w.Normalize()
	stored := w
	s.byID[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	return stored, nil
}
