// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
)

// flexFloat accepts a JSON number or a numeric string. Unparseable
// strings read as zero, matching how manual entry forms submit values.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// workoutRequest mirrors the OpenAPI schema for POST /workouts.
type workoutRequest struct {
	Date     string    `json:"date"`
	Sport    string    `json:"sport"`
	Duration flexFloat `json:"duration_hours"`
	Distance flexFloat `json:"distance_miles"`
	Notes    string    `json:"notes"`
}

func (r workoutRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Date) == "":
		return errors.New("missing date")
	case strings.TrimSpace(r.Sport) == "":
		return errors.New("missing sport")
	}
	if !sport.FromName(r.Sport).Supported() {
		return errors.New("unknown sport: " + r.Sport)
	}
	return nil
}

// workoutPatch mirrors the OpenAPI schema for PATCH /workouts/{id}.
// Absent fields are left unchanged.
type workoutPatch struct {
	Date     *string    `json:"date"`
	Sport    *string    `json:"sport"`
	Duration *flexFloat `json:"duration_hours"`
	Distance *flexFloat `json:"distance_miles"`
	Notes    *string    `json:"notes"`
}

func (p workoutPatch) fields() (model.WorkoutUpdate, error) {
	var update model.WorkoutUpdate
	if p.Date != nil {
		day, err := parseDay(*p.Date)
		if err != nil {
			return model.WorkoutUpdate{}, err
		}
		update.Date = &day
	}
	if p.Sport != nil {
		s := sport.FromName(*p.Sport)
		if !s.Supported() {
			return model.WorkoutUpdate{}, errors.New("unknown sport: " + *p.Sport)
		}
		update.Sport = &s
	}
	if p.Duration != nil {
		v := float64(*p.Duration)
		update.DurationHours = &v
	}
	if p.Distance != nil {
		v := float64(*p.Distance)
		update.DistanceMiles = &v
	}
	update.Notes = p.Notes
	return update, nil
}

// WorkoutsHandler handles workout collection and item requests.
type WorkoutsHandler struct {
	deps Dependencies
}

// NewWorkoutsHandler creates a new workouts handler.
func NewWorkoutsHandler(deps Dependencies) *WorkoutsHandler {
	return &WorkoutsHandler{deps: deps}
}

// HandleCollection handles GET, POST and DELETE /workouts requests.
// DELETE requires a week query parameter and removes that whole week.
func (h *WorkoutsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodDelete:
		h.handleDeleteWeek(w, r)
	default:
		http.NotFound(w, r)
	}
}

// HandleItem handles GET, PATCH and DELETE /workouts/{id} requests.
func (h *WorkoutsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.workout"

	id := strings.TrimPrefix(r.URL.Path, "/workouts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		workout, err := h.deps.GetWorkout(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, workout)

	case http.MethodPatch, http.MethodPut:
		var patch workoutPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		fields, err := patch.fields()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		workout, err := h.deps.UpdateWorkout(r.Context(), id, fields)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, workout)

	case http.MethodDelete:
		if err := h.deps.DeleteWorkout(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.NotFound(w, r)
	}
}

func (h *WorkoutsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_workouts"

	workouts, err := h.deps.ListWorkouts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	query := r.URL.Query()
	if query.Get("start") != "" || query.Get("end") != "" {
		start, err := parseDay(query.Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		end, err := parseDay(query.Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		filtered := make([]model.Workout, 0, len(workouts))
		for _, workout := range workouts {
			if workout.Date.Before(start) || !workout.Date.Before(end.Add(24*time.Hour)) {
				continue
			}
			filtered = append(filtered, workout)
		}
		workouts = filtered
	}

	if workouts == nil {
		workouts = []model.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_workout"

	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	day, err := parseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	workout, err := h.deps.CreateWorkout(r.Context(), model.Workout{
		Date:          day,
		Sport:         sport.FromName(req.Sport),
		DurationHours: float64(req.Duration),
		DistanceMiles: float64(req.Distance),
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, workout)
}

func (h *WorkoutsHandler) handleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_week"

	week := r.URL.Query().Get("week")
	if week == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing week parameter")))
		return
	}
	day, err := parseDay(week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	removed, err := h.deps.DeleteWeek(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
