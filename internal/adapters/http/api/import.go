// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// importRequest mirrors the OpenAPI schema for POST /import. Either a
// day count or an explicit window is given; days wins when both are set.
type importRequest struct {
	Days  int    `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r importRequest) window(now time.Time) (time.Time, time.Time, error) {
	if r.Days > 0 {
		return now.AddDate(0, 0, -r.Days), now, nil
	}
	if r.Start == "" || r.End == "" {
		return time.Time{}, time.Time{}, errors.New("missing days or start/end window")
	}
	start, err := parseDay(r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end before start")
	}
	return start, end, nil
}

// ImportHandler handles import requests.
type ImportHandler struct {
	deps Dependencies
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps Dependencies) *ImportHandler {
	return &ImportHandler{deps: deps}
}

// HandleImport handles POST /import requests.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	start, end, err := req.window(time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.Import(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
