// Package stripe implements payments.PaymentProvider on Stripe Checkout.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"tournament-entry/internal/payments"
)

const signatureHeader = "stripe-signature"

type Provider struct {
	sessions      *session.Client
	webhookSecret string
}

func New(secretKey, webhookSecret string) *Provider {
	return NewWithBackend(secretKey, webhookSecret, stripego.GetBackend(stripego.APIBackend))
}

// NewWithBackend lets callers point the session client at another API host.
func NewWithBackend(secretKey, webhookSecret string, b stripego.Backend) *Provider {
	return &Provider{
		sessions:      &session.Client{B: b, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

func (p *Provider) Name() string { return "stripe" }

func (p *Provider) CreateCheckoutSession(ctx context.Context, in payments.CheckoutSessionInput) (string, error) {
	params := &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency: stripego.String(in.Currency),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripego.String(in.ProductName),
						Description: stripego.String(in.Description),
					},
					UnitAmount: stripego.Int64(in.UnitAmount),
				},
				Quantity: stripego.Int64(1),
			},
		},
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(in.SuccessURL),
		CancelURL:  stripego.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.sessions.New(params)
	if err != nil {
		// Surface Stripe's own message rather than the JSON envelope.
		var se *stripego.Error
		if errors.As(err, &se) && se.Msg != "" {
			return "", errors.New(se.Msg)
		}
		return "", err
	}
	return s.ID, nil
}

func (p *Provider) ParseWebhook(ctx context.Context, body []byte, headers map[string]string) (payments.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(body, headers[signatureHeader], p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return payments.Event{}, fmt.Errorf("%w: %v", payments.ErrInvalidSignature, err)
	}

	out := payments.Event{Type: string(ev.Type)}
	if out.Type != payments.EventCheckoutCompleted {
		return out, nil
	}
	if ev.Data == nil {
		return out, fmt.Errorf("event %s has no data", ev.ID)
	}

	var cs stripego.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return out, fmt.Errorf("decode checkout session: %w", err)
	}
	out.SessionID = cs.ID
	out.AmountTotal = cs.AmountTotal
	out.Metadata = cs.Metadata
	return out, nil
}
