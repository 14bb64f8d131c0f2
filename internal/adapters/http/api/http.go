// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/javy001/trainingplanner/internal/adapters/repository"
	"github.com/javy001/trainingplanner/internal/adapters/source"
	service "github.com/javy001/trainingplanner/internal/app"
	"github.com/javy001/trainingplanner/internal/domain/aggregate"
	"github.com/javy001/trainingplanner/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Import reconciles the external window against the local collection.
	Import(ctx context.Context, start, end time.Time) (service.ImportResult, error)

	// Workout collection operations.
	ListWorkouts(ctx context.Context) ([]model.Workout, error)
	GetWorkout(ctx context.Context, id string) (model.Workout, error)
	CreateWorkout(ctx context.Context, w model.Workout) (model.Workout, error)
	UpdateWorkout(ctx context.Context, id string, fields model.WorkoutUpdate) (model.Workout, error)
	DeleteWorkout(ctx context.Context, id string) error
	DeleteWeek(ctx context.Context, day time.Time) (int, error)
	CopyWeek(ctx context.Context, day time.Time) ([]model.Workout, error)

	// Aggregate queries.
	DailySeries(ctx context.Context, day time.Time, metric aggregate.Metric) ([]aggregate.DailySeriesPoint, error)
	WeeklyTotals(ctx context.Context, metric aggregate.Metric, start, end time.Time) ([]aggregate.WeeklyTotal, error)
	SportTotals(ctx context.Context, metric aggregate.Metric, start, end time.Time) (map[string]float64, error)
	WeekSummary(ctx context.Context, day time.Time) (aggregate.WeekSummary, error)

	// GetStats returns current service statistics.
	GetStats(ctx context.Context) service.Stats
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	importHandler     *ImportHandler
	workoutsHandler   *WorkoutsHandler
	weeksHandler      *WeeksHandler
	aggregatesHandler *AggregatesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		importHandler:     NewImportHandler(deps),
		workoutsHandler:   NewWorkoutsHandler(deps),
		weeksHandler:      NewWeeksHandler(deps),
		aggregatesHandler: NewAggregatesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/import", MetricsMiddleware(s.importHandler.HandleImport, "import"))
	mux.HandleFunc("/workouts", MetricsMiddleware(s.workoutsHandler.HandleCollection, "workouts"))
	mux.HandleFunc("/workouts/", MetricsMiddleware(s.workoutsHandler.HandleItem, "workout"))
	mux.HandleFunc("/weeks/copy", MetricsMiddleware(s.weeksHandler.HandleCopy, "weeks_copy"))
	mux.HandleFunc("/weeks/summary", MetricsMiddleware(s.weeksHandler.HandleSummary, "weeks_summary"))
	mux.HandleFunc("/aggregates/daily", MetricsMiddleware(s.aggregatesHandler.HandleDaily, "aggregates_daily"))
	mux.HandleFunc("/aggregates/weekly", MetricsMiddleware(s.aggregatesHandler.HandleWeekly, "aggregates_weekly"))
	mux.HandleFunc("/aggregates/sports", MetricsMiddleware(s.aggregatesHandler.HandleSports, "aggregates_sports"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates errors the service layer surfaces into
// the HTTP contract.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrImportInFlight):
		writeError(w, http.StatusConflict, "import_in_flight", err)
	case errors.Is(err, service.ErrNoSource):
		writeError(w, http.StatusBadGateway, "no_source", err)
	case errors.Is(err, source.ErrAuthorization):
		writeError(w, http.StatusForbidden, "source_forbidden", err)
	case errors.Is(err, source.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "source_unavailable", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

// parseDay accepts a calendar date ("2026-04-06") or a full RFC3339
// timestamp.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date; must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}
