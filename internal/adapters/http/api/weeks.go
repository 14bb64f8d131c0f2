// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
)

// copyWeekRequest mirrors the OpenAPI schema for POST /weeks/copy.
type copyWeekRequest struct {
	Week string `json:"week"`
}

// WeeksHandler handles week-level operations.
type WeeksHandler struct {
	deps Dependencies
}

// NewWeeksHandler creates a new weeks handler.
func NewWeeksHandler(deps Dependencies) *WeeksHandler {
	return &WeeksHandler{deps: deps}
}

// HandleCopy handles POST /weeks/copy requests, duplicating the named
// week one week forward.
func (h *WeeksHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	const op = "api.copy_week"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req copyWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Week == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing week")))
		return
	}
	day, err := parseDay(req.Week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	copies, err := h.deps.CopyWeek(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if copies == nil {
		copies = []model.Workout{}
	}

	writeJSON(w, http.StatusCreated, copies)
}

// HandleSummary handles GET /weeks/summary requests. The day parameter
// names any day of the wanted week and defaults to today.
func (h *WeeksHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.week_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
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

	summary, err := h.deps.WeekSummary(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
