package payment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/core/ports"
)

// OfflineGateway captures every charge immediately without contacting any
// processor. Used for local development when no gateway keys are configured.
type OfflineGateway struct{}

func NewOffline() *OfflineGateway {
	return &OfflineGateway{}
}

func (g *OfflineGateway) Charge(_ context.Context, _ string, amountCents int64, currency string, bookingID uuid.UUID) (*ports.ChargeResult, error) {
	log.Printf("[payment] offline capture of %d %s for booking %s", amountCents, currency, bookingID)
	return &ports.ChargeResult{
		IntentID: "offline_" + bookingID.String(),
		Captured: true,
	}, nil
}

func (g *OfflineGateway) Refund(_ context.Context, intentID string, amountCents int64) error {
	log.Printf("[payment] offline refund of %d on %s", amountCents, intentID)
	return nil
}
