// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/aggregate"
)

// AggregatesHandler handles aggregate query requests.
type AggregatesHandler struct {
	deps Dependencies
}

// NewAggregatesHandler creates a new aggregates handler.
func NewAggregatesHandler(deps Dependencies) *AggregatesHandler {
	return &AggregatesHandler{deps: deps}
}

// HandleDaily handles GET /aggregates/daily requests: the cumulative
// per-sport series for one week. The day parameter names any day of the
// wanted week and defaults to today.
func (h *AggregatesHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	const op = "api.aggregates_daily"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	metric, err := aggregate.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	day := time.Now()
	if q := r.URL.Query().Get("day"); q != "" {
		parsed, err := parseDay(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		day = parsed
	}

	points, err := h.deps.DailySeries(r.Context(), day, metric)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, points)
}

// HandleWeekly handles GET /aggregates/weekly requests: one plain total
// per week overlapping [start, end].
func (h *AggregatesHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	const op = "api.aggregates_weekly"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	metric, err := aggregate.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start, end, ok := h.parseRange(w, r, op)
	if !ok {
		return
	}

	totals, err := h.deps.WeeklyTotals(r.Context(), metric, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// HandleSports handles GET /aggregates/sports requests: the plain sum of
// the metric per sport over [start, end].
func (h *AggregatesHandler) HandleSports(w http.ResponseWriter, r *http.Request) {
	const op = "api.aggregates_sports"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	metric, err := aggregate.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start, end, ok := h.parseRange(w, r, op)
	if !ok {
		return
	}

	totals, err := h.deps.SportTotals(r.Context(), metric, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// parseRange reads the required start and end parameters, writing a bad
// request response when they are missing or inverted.
func (h *AggregatesHandler) parseRange(w http.ResponseWriter, r *http.Request, op string) (time.Time, time.Time, bool) {
	startQ := r.URL.Query().Get("start")
	endQ := r.URL.Query().Get("end")
	if startQ == "" || endQ == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing start or end parameter")))
		return time.Time{}, time.Time{}, false
	}
	start, err := parseDay(startQ)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDay(endQ)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("end before start")))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
