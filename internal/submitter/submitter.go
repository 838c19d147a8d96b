// Package submitter sends a tournament entry to the checkout session
// endpoint, the way the entry form page does.
package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tournament-entry/internal/models"
)

// EntryFee is sent as totalPrice. The server ignores its value.
const EntryFee = "34.00"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: http.DefaultClient}
}

// StatusError reports a non-2xx answer from the session creator.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Network response was not ok: %d %s", e.Code, e.Body)
}

// Submit posts e (with defaults applied) once and returns the created
// checkout session. There is no retry.
func (c *Client) Submit(ctx context.Context, e models.Entry) (models.CheckoutSessionResponse, error) {
	var out models.CheckoutSessionResponse

	body, err := json.Marshal(models.CheckoutSessionRequest{
		Entry:      e.WithDefaults(),
		TotalPrice: EntryFee,
	})
	if err != nil {
		return out, fmt.Errorf("encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/create-checkout-session", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return out, fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return out, &StatusError{Code: resp.StatusCode, Body: string(text)}
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode checkout session response: %w", err)
	}
	return out, nil
}
