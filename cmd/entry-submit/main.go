package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"tournament-entry/internal/models"
	"tournament-entry/internal/payments"
	"tournament-entry/internal/payments/stub"
	"tournament-entry/internal/submitter"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "entry-submit",
		Usage: "Submit tournament entries to the checkout service",
		Commands: []*cli.Command{
			{
				Name:      "submit",
				Usage:     "Create a checkout session for the entry in FILE (YAML or JSON)",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "base",
						Usage:   "Base URL of the checkout functions",
						Value:   "http://localhost:8080",
						EnvVars: []string{"ENTRY_API_BASE"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Give up after this long (0 waits forever)",
					},
				},
				Action: submitAction,
			},
			{
				Name:      "simulate-webhook",
				Usage:     "Send a signed stub-provider completion event for the entry in FILE",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Value: "http://localhost:8080/stripe-webhook", Usage: "Webhook URL"},
					&cli.StringFlag{Name: "secret", Value: "change-me", EnvVars: []string{"STRIPE_WEBHOOK_SECRET"}, Usage: "Stub signing secret"},
					&cli.StringFlag{Name: "session", Required: true, Usage: "Checkout session id"},
					&cli.Int64Flag{Name: "amount", Value: 100, Usage: "Amount paid in pence"},
				},
				Action: simulateWebhookAction,
			},
		},
	}
}

func loadEntry(path string) (models.Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// YAML is a superset of JSON, so one decoder covers both.
	var e models.Entry
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return e, nil
}

func submitAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: entry-submit submit FILE", 2)
	}
	entry, err := loadEntry(c.Args().First())
	if err != nil {
		return err
	}

	ctx := c.Context
	if d := c.Duration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	res, err := submitter.New(c.String("base")).Submit(ctx, entry)
	if err != nil {
		return fmt.Errorf("error creating secure tournament entry: %w", err)
	}
	fmt.Fprintln(c.App.Writer, res.SessionID)
	return nil
}

func simulateWebhookAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: entry-submit simulate-webhook --session ID FILE", 2)
	}
	entry, err := loadEntry(c.Args().First())
	if err != nil {
		return err
	}

	body, err := json.Marshal(stub.WebhookPayload{
		Type:        payments.EventCheckoutCompleted,
		SessionID:   c.String("session"),
		AmountTotal: c.Int64("amount"),
		Metadata:    entry.Metadata(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(c.Context, http.MethodPost, c.String("url"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", stub.New(c.String("secret")).Sign(body))

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	fmt.Fprintf(c.App.Writer, "%d %s\n", resp.StatusCode, bytes.TrimSpace(out))
	if resp.StatusCode != http.StatusOK {
		return cli.Exit("webhook rejected", 1)
	}
	return nil
}
