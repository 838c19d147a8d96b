package stub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tournament-entry/internal/payments"
	"tournament-entry/internal/util"
)

// Stub provider for local runs without Stripe:
// - CreateCheckoutSession: returns cs_stub_<uuid>, nothing is charged
// - Webhook: POST with X-Signature = hex HMAC-SHA256(secret, body)

const SignatureHeader = "x-signature"

type Provider struct {
	secret string
}

func New(secret string) *Provider {
	return &Provider{secret: secret}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreateCheckoutSession(ctx context.Context, in payments.CheckoutSessionInput) (string, error) {
	if in.UnitAmount <= 0 {
		return "", fmt.Errorf("unit amount must be positive")
	}
	return "cs_stub_" + uuid.NewString(), nil
}

// WebhookPayload is the body the stub expects on its webhook.
type WebhookPayload struct {
	Type        string            `json:"type"`
	SessionID   string            `json:"session_id"`
	AmountTotal int64             `json:"amount_total"`
	Metadata    map[string]string `json:"metadata"`
}

// Sign returns the X-Signature value for body.
func (p *Provider) Sign(body []byte) string {
	return util.HMACSHA256Hex(p.secret, string(body))
}

func (p *Provider) ParseWebhook(ctx context.Context, body []byte, headers map[string]string) (payments.Event, error) {
	sig := headers[SignatureHeader]
	if sig == "" || sig != p.Sign(body) {
		return payments.Event{}, payments.ErrInvalidSignature
	}

	var pl WebhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return payments.Event{}, fmt.Errorf("%w: %v", payments.ErrInvalidSignature, err)
	}
	if pl.Type == "" {
		pl.Type = payments.EventCheckoutCompleted
	}
	return payments.Event{
		Type:        pl.Type,
		SessionID:   pl.SessionID,
		AmountTotal: pl.AmountTotal,
		Metadata:    pl.Metadata,
	}, nil
}
