package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dineflow/dineflow/internal/core/services"
)

// JobsHandler exposes the periodic task entry points so any external
// scheduler can drive them. Both tasks are idempotent and tolerate
// overlapping invocations, including with the in-process tickers.
type JobsHandler struct {
	availability *services.AvailabilityService
	reaper       *services.ReaperService
}

func NewJobsHandler(availability *services.AvailabilityService, reaper *services.ReaperService) *JobsHandler {
	return &JobsHandler{availability: availability, reaper: reaper}
}

func (h *JobsHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.availability.MaterializeUpcomingSlots(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *JobsHandler) Reap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.reaper.Run(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(h.reaper.Stats())
}
