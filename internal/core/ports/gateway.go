package ports

import (
	"context"

	"github.com/google/uuid"
)

// ChargeResult is the gateway's immediate answer to a charge attempt. When
// neither Captured nor Failed is set the outcome is ambiguous and the
// booking stays PENDING until the webhook arrives.
type ChargeResult struct {
	IntentID      string
	Captured      bool
	Failed        bool
	FailureReason string
}

// PaymentGateway is the external payment collaborator. Definitive failures
// must be compensated by the caller (capacity release); ambiguous outcomes
// are resolved by webhook.
type PaymentGateway interface {
	Charge(ctx context.Context, methodRef string, amountCents int64, currency string, bookingID uuid.UUID) (*ChargeResult, error)
	Refund(ctx context.Context, intentID string, amountCents int64) error
}

// Notifier is the outbound notification collaborator. Failures are logged
// and swallowed; booking correctness never depends on delivery.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}
