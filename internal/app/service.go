// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/javy001/trainingplanner/internal/adapters/repository"
	"github.com/javy001/trainingplanner/internal/adapters/source"
	"github.com/javy001/trainingplanner/internal/domain/aggregate"
	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/internal/domain/dedupe"
	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/reconcile"
	"github.com/javy001/trainingplanner/pkg/logger"
	"github.com/javy001/trainingplanner/pkg/metrics"
)

// Service implements the API dependencies for the training planner.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	source  source.Provider
	deduper *dedupe.BatchDeduper
	matcher *reconcile.Matcher

	// Configuration
	bridgeName        string
	launchImportDays  int
	durationTolerance float64
	distanceTolerance float64

	// Import single-flight guard. At most one import may run at a time;
	// a second request is rejected, never queued.
	importGate chan struct{}

	// State
	started        bool
	lastImport     *ImportResult
	lastImportTime time.Time

	// Logging
	logger logger.Logger
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Fetched    int       `json:"fetched"`
	Duplicates int       `json:"duplicates"`
	Imported   int       `json:"imported"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Stats describes the current state of the service.
type Stats struct {
	WorkoutCount   int           `json:"workout_count"`
	LastImport     *ImportResult `json:"last_import,omitempty"`
	LastImportTime *time.Time    `json:"last_import_time,omitempty"`
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		bridgeName:        "Health",
		launchImportDays:  7,
		durationTolerance: 0.05,
		distanceTolerance: 0.05,
		importGate:        make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. When a workout source is
// configured, the recent window is imported in the background so the
// local collection is current on startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting training planner service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.deduper = dedupe.NewBatchDeduper(
		dedupe.WithDistanceTolerance(s.distanceTolerance),
	)
	s.matcher = reconcile.NewMatcher(
		reconcile.WithDurationTolerance(s.durationTolerance),
		reconcile.WithDistanceTolerance(s.distanceTolerance),
		reconcile.WithBridgeName(s.bridgeName),
	)

	s.started = true
	s.logger.Info(ctx, "training planner service started",
		logger.String("bridge", s.bridgeName),
		logger.Int("launchImportDays", s.launchImportDays),
	)

	if s.source != nil && s.launchImportDays > 0 {
		go s.launchImport(ctx)
	}

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "training planner service stopped")
}

// launchImport runs the startup import of the recent window. Failures
// are logged, never fatal; manual import stays available.
func (s *Service) launchImport(ctx context.Context) {
	end := time.Now()
	start := end.AddDate(0, 0, -s.launchImportDays)

	res, err := s.Import(ctx, start, end)
	if err != nil {
		s.logger.Warn(ctx, "launch import failed", logger.Error(err))
		return
	}

	s.logger.Info(ctx, "launch import complete",
		logger.Int("fetched", res.Fetched),
		logger.Int("inserted", res.Inserted),
		logger.Int("updated", res.Updated),
	)
}

// Import fetches external records for [start, end], deduplicates them,
// reconciles against the local collection and applies the result as one
// batch. At most one import runs at a time; a concurrent call returns
// ErrImportInFlight immediately.
func (s *Service) Import(ctx context.Context, start, end time.Time) (ImportResult, error) {
	const op = "service.Import"

	if s.source == nil {
		return ImportResult{}, fmt.Errorf("%s: %w", op, ErrNoSource)
	}

	select {
	case s.importGate <- struct{}{}:
	default:
		metrics.RecordImportRejected()
		return ImportResult{}, fmt.Errorf("%s: %w", op, ErrImportInFlight)
	}
	defer func() { <-s.importGate }()

	metrics.RecordImportStarted()
	began := time.Now()

	s.logger.Info(ctx, "import started",
		logger.Time("start", start),
		logger.Time("end", end),
	)

	records, err := s.source.FetchWorkouts(ctx, start, end)
	if err != nil {
		metrics.RecordImportError(importErrorReason(err))
		return ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordRecordsFetched(len(records))

	deduped := s.deduper.Dedupe(records)
	metrics.RecordRecordsDeduplicated(len(records) - len(deduped))

	local, err := s.store.ListWorkouts(ctx)
	if err != nil {
		metrics.RecordImportError("store")
		return ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}

	outcome := s.matcher.Reconcile(deduped, local)

	if err := s.store.ApplyUpserts(ctx, outcome.Upserts); err != nil {
		metrics.RecordImportError("store")
		return ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordWorkoutsInserted(outcome.Inserted)
	metrics.RecordWorkoutsUpdated(outcome.Updated)
	metrics.RecordImportDuration(float64(time.Since(began).Milliseconds()))

	result := ImportResult{
		Fetched:    len(records),
		Duplicates: len(records) - len(deduped),
		Imported:   outcome.Imported,
		Inserted:   outcome.Inserted,
		Updated:    outcome.Updated,
		Start:      start,
		End:        end,
	}

	s.mu.Lock()
	s.lastImport = &result
	s.lastImportTime = time.Now()
	s.mu.Unlock()

	s.logger.Info(ctx, "import complete",
		logger.Int("fetched", result.Fetched),
		logger.Int("duplicates", result.Duplicates),
		logger.Int("inserted", result.Inserted),
		logger.Int("updated", result.Updated),
	)

	return result, nil
}

// ImportLastDays imports the window ending now and starting days ago.
func (s *Service) ImportLastDays(ctx context.Context, days int) (ImportResult, error) {
	end := time.Now()
	return s.Import(ctx, end.AddDate(0, 0, -days), end)
}

// ListWorkouts returns all workouts.
func (s *Service) ListWorkouts(ctx context.Context) ([]model.Workout, error) {
	return s.store.ListWorkouts(ctx)
}

// GetWorkout returns a single workout.
func (s *Service) GetWorkout(ctx context.Context, id string) (model.Workout, error) {
	return s.store.GetWorkout(ctx, id)
}

// CreateWorkout stores a manually entered workout.
func (s *Service) CreateWorkout(ctx context.Context, w model.Workout) (model.Workout, error) {
	return s.store.Insert(ctx, w)
}

// UpdateWorkout applies the set fields to an existing workout.
func (s *Service) UpdateWorkout(ctx context.Context, id string, fields model.WorkoutUpdate) (model.Workout, error) {
	return s.store.Update(ctx, id, fields)
}

// DeleteWorkout removes a workout.
func (s *Service) DeleteWorkout(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// DeleteWeek removes every workout in the week containing day and
// returns how many were removed.
func (s *Service) DeleteWeek(ctx context.Context, day time.Time) (int, error) {
	const op = "service.DeleteWeek"

	start := calendar.MondayOfWeek(day)
	end := calendar.SundayOfWeek(day)

	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	removed := 0
	for _, w := range workouts {
		if w.Date.Before(start) || w.Date.After(end) {
			continue
		}
		if err := s.store.Delete(ctx, w.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return removed, fmt.Errorf("%s: %w", op, err)
		}
		removed++
	}

	s.logger.Info(ctx, "week deleted",
		logger.Time("weekStart", start),
		logger.Int("removed", removed),
	)

	return removed, nil
}

// CopyWeek copies every workout in the week containing day to the
// following week, seven days later. Copies get fresh identities and no
// external source link, so a later import treats them as local entries.
func (s *Service) CopyWeek(ctx context.Context, day time.Time) ([]model.Workout, error) {
	const op = "service.CopyWeek"

	start := calendar.MondayOfWeek(day)
	end := calendar.SundayOfWeek(day)

	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var copies []model.Workout
	for _, w := range workouts {
		if w.Date.Before(start) || w.Date.After(end) {
			continue
		}
		dup := w
		dup.ID = ""
		dup.ExternalSourceID = ""
		dup.Date = w.Date.AddDate(0, 0, 7)

		stored, err := s.store.Insert(ctx, dup)
		if err != nil {
			return copies, fmt.Errorf("%s: %w", op, err)
		}
		copies = append(copies, stored)
	}

	s.logger.Info(ctx, "week copied",
		logger.Time("weekStart", start),
		logger.Int("workouts", len(copies)),
	)

	return copies, nil
}

// DailySeries returns the cumulative per-sport series for the week
// containing day.
func (s *Service) DailySeries(ctx context.Context, day time.Time, metric aggregate.Metric) ([]aggregate.DailySeriesPoint, error) {
	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordAggregateQuery("daily", metric.String())

	return aggregate.CumulativeSeries(workouts, metric, calendar.DaysOfWeek(day)), nil
}

// WeeklyTotals returns one total per week overlapping [start, end].
func (s *Service) WeeklyTotals(ctx context.Context, metric aggregate.Metric, start, end time.Time) ([]aggregate.WeeklyTotal, error) {
	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordAggregateQuery("weekly", metric.String())

	return aggregate.WeeklyTotals(workouts, metric, start, end), nil
}

// SportTotals returns the per-sport sum of metric over the workouts whose
// date falls on a day of [start, end], inclusive.
func (s *Service) SportTotals(ctx context.Context, metric aggregate.Metric, start, end time.Time) (map[string]float64, error) {
	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordAggregateQuery("sports", metric.String())

	from := calendar.StartOfDay(start)
	to := calendar.StartOfDay(end).AddDate(0, 0, 1)
	inRange := make([]model.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.Date.Before(from) || !w.Date.Before(to) {
			continue
		}
		inRange = append(inRange, w)
	}

	return aggregate.SportTotals(inRange, metric), nil
}

// WeekSummary returns the training summary for the week containing day.
func (s *Service) WeekSummary(ctx context.Context, day time.Time) (aggregate.WeekSummary, error) {
	workouts, err := s.store.ListWorkouts(ctx)
	if err != nil {
		return aggregate.WeekSummary{}, err
	}

	metrics.RecordAggregateQuery("summary", aggregate.MetricDuration.String())

	return aggregate.SummarizeWeek(workouts, day), nil
}

// GetStats returns current service statistics.
func (s *Service) GetStats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		WorkoutCount: s.store.Count(ctx),
		LastImport:   s.lastImport,
	}
	if !s.lastImportTime.IsZero() {
		t := s.lastImportTime
		stats.LastImportTime = &t
	}

	return stats
}

func importErrorReason(err error) string {
	switch {
	case errors.Is(err, source.ErrAuthorization):
		return "authorization"
	case errors.Is(err, source.ErrUnavailable):
		return "unavailable"
	default:
		return "unknown"
	}
}
