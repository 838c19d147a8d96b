// Package recorder delivers paid entries to the system of record.
package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"tournament-entry/internal/models"
)

type Recorder interface {
	Record(ctx context.Context, rec models.ForwardedRecord) error
}

// AppsScript posts records as JSON to a spreadsheet automation endpoint.
type AppsScript struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewAppsScript(url string, client *http.Client, log *slog.Logger) *AppsScript {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &AppsScript{url: url, client: client, log: log}
}

// StatusError is returned when the endpoint answers outside 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recording endpoint returned %d: %s", e.Code, e.Body)
}

func (a *AppsScript) Record(ctx context.Context, rec models.ForwardedRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	a.log.InfoContext(ctx, "sending entry to recording endpoint", "url", a.url)
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	a.log.InfoContext(ctx, "recording endpoint response", "status", resp.StatusCode, "body", string(respBody))
	return nil
}
