package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req services.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	hold, err := h.svc.CreateHold(r.Context(), req)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(hold)
}

type bookingActionRequest struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason,omitempty"`
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(id uuid.UUID, req bookingActionRequest) error {
		return h.svc.CancelBooking(r.Context(), id, req.Reason)
	})
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(id uuid.UUID, _ bookingActionRequest) error {
		return h.svc.CheckIn(r.Context(), id)
	})
}

func (h *BookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(id uuid.UUID, _ bookingActionRequest) error {
		return h.svc.MarkNoShow(r.Context(), id)
	})
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(id uuid.UUID, _ bookingActionRequest) error {
		return h.svc.Complete(r.Context(), id)
	})
}

func (h *BookingHandler) action(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID, bookingActionRequest) error) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bookingActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := fn(id, req); err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientCapacity):
		// Recoverable: the client should offer the waitlist instead.
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":          err.Error(),
			"waitlist_offer": "true",
		})
	case errors.Is(err, domain.ErrSlotNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrHoldNotFound),
		errors.Is(err, domain.ErrScheduleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrHoldExpired),
		errors.Is(err, domain.ErrNotReleasable),
		errors.Is(err, domain.ErrWaitlistDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrGateway):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
