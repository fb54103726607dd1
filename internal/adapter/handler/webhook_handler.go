package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/dineflow/dineflow/internal/adapter/payment"
	"github.com/dineflow/dineflow/internal/core/services"
)

// EventVerifier confirms a webhook event with the gateway instead of
// trusting the inbound body.
type EventVerifier interface {
	VerifyEvent(ctx context.Context, eventID string) (*payment.WebhookEvent, error)
}

type WebhookHandler struct {
	svc      *services.BookingService
	verifier EventVerifier
}

func NewWebhookHandler(svc *services.BookingService, verifier EventVerifier) *WebhookHandler {
	return &WebhookHandler{svc: svc, verifier: verifier}
}

type incomingEvent struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func (h *WebhookHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.verifier == nil {
		http.Error(w, "webhooks not configured", http.StatusServiceUnavailable)
		return
	}

	var inc incomingEvent
	if err := json.NewDecoder(r.Body).Decode(&inc); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ev, err := h.verifier.VerifyEvent(r.Context(), inc.ID)
	if err != nil {
		log.Printf("webhook: event %s verification failed: %v", inc.ID, err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if ev == nil {
		// Event kind we do not handle; acknowledge so the gateway stops retrying.
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case ev.Succeeded:
		if err := h.svc.HandlePaymentSucceeded(r.Context(), ev.IntentID); err != nil {
			log.Printf("webhook: success handling for intent %s failed: %v", ev.IntentID, err)
		}
	case ev.Failed:
		if err := h.svc.HandlePaymentFailed(r.Context(), ev.IntentID, ev.Reason); err != nil {
			log.Printf("webhook: failure handling for intent %s failed: %v", ev.IntentID, err)
		}
	}

	w.WriteHeader(http.StatusOK)
}
