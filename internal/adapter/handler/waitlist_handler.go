package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/domain"
	"github.com/dineflow/dineflow/internal/core/services"
)

type WaitlistHandler struct {
	svc *services.WaitlistService
}

func NewWaitlistHandler(svc *services.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

type joinWaitlistRequest struct {
	OfferingID string `json:"offering_id"`
	SlotID     string `json:"slot_id"`
	PartySize  int    `json:"party_size"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	Priority   int    `json:"priority,omitempty"`
}

func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req joinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	offeringID, err := uuid.Parse(req.OfferingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offering id")
		return
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot id")
		return
	}

	guest := domain.Guest{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone}
	entry, err := h.svc.Join(r.Context(), offeringID, slotID, req.PartySize, guest, req.Priority)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(entry)
}
