package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"

	"github.com/dineflow/dineflow/internal/core/ports"
)

// OmiseGateway implements the payment port against Omise. Charges carry the
// booking id as metadata so webhook events can be routed back.
type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	client.SetDebug(false)
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) Charge(_ context.Context, methodRef string, amountCents int64, currency string, bookingID uuid.UUID) (*ports.ChargeResult, error) {
	charge := &omise.Charge{}
	err := g.client.Do(charge, &operations.CreateCharge{
		Amount:   amountCents,
		Currency: currency,
		Card:     methodRef,
		Metadata: map[string]interface{}{"booking_id": bookingID.String()},
	})
	if err != nil {
		return nil, err
	}

	result := &ports.ChargeResult{IntentID: charge.ID}
	switch charge.Status {
	case "successful":
		result.Captured = true
	case "failed":
		result.Failed = true
		if charge.FailureCode != nil {
			result.FailureReason = *charge.FailureCode
		}
	}
	// Any other status is ambiguous; the webhook settles it.

	return result, nil
}

func (g *OmiseGateway) Refund(_ context.Context, intentID string, amountCents int64) error {
	refund := &omise.Refund{}
	return g.client.Do(refund, &operations.CreateRefund{
		ChargeID: intentID,
		Amount:   amountCents,
	})
}

// WebhookEvent is the normalized outcome of a verified gateway event.
type WebhookEvent struct {
	IntentID  string
	Succeeded bool
	Failed    bool
	Reason    string
}

// VerifyEvent re-fetches the event from Omise rather than trusting the
// webhook body, then normalizes charge.complete into a success or failure.
// Events of other kinds come back nil.
func (g *OmiseGateway) VerifyEvent(_ context.Context, eventID string) (*WebhookEvent, error) {
	ev := &omise.Event{}
	if err := g.client.Do(ev, &operations.RetrieveEvent{EventID: eventID}); err != nil {
		return nil, fmt.Errorf("retrieve event: %w", err)
	}

	if ev.Key != "charge.complete" {
		return nil, nil
	}

	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}
	var charge omise.Charge
	if err := json.Unmarshal(raw, &charge); err != nil {
		return nil, fmt.Errorf("decode charge: %w", err)
	}

	out := &WebhookEvent{IntentID: charge.ID}
	if charge.Status == "successful" {
		out.Succeeded = true
	} else {
		out.Failed = true
		if charge.FailureCode != nil {
			out.Reason = *charge.FailureCode
		}
	}

	return out, nil
}
