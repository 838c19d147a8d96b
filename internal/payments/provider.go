package payments

import (
	"context"
	"errors"
)

// EventCheckoutCompleted is the only event type that triggers forwarding.
const EventCheckoutCompleted = "checkout.session.completed"

// ErrInvalidSignature wraps every webhook authenticity failure.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

type CheckoutSessionInput struct {
	ProductName string
	Description string
	UnitAmount  int64 // minor units
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Event is a verified webhook notification. Session fields are only
// populated for checkout session events.
type Event struct {
	Type        string
	SessionID   string
	AmountTotal int64
	Metadata    map[string]string
}

type PaymentProvider interface {
	Name() string

	// CreateCheckoutSession creates a hosted checkout and returns its id.
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (sessionID string, err error)

	// ParseWebhook verifies the notification and decodes it. headers are keyed
	// lower-case.
	ParseWebhook(ctx context.Context, body []byte, headers map[string]string) (Event, error)
}
