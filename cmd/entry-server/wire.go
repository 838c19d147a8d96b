package main

import (
	"context"
	"fmt"
	"log/slog"

	"tournament-entry/internal/config"
	"tournament-entry/internal/payments"
	"tournament-entry/internal/payments/stripe"
	"tournament-entry/internal/payments/stub"
	"tournament-entry/internal/recorder"
	"tournament-entry/internal/server"
	"tournament-entry/internal/sheets"
	"tournament-entry/internal/tgbot"
)

func wire(ctx context.Context, cfg config.Config, logger *slog.Logger) (server.Deps, error) {
	d := server.Deps{Config: cfg, Logger: logger}

	pay, err := newProvider(cfg)
	if err != nil {
		return d, fmt.Errorf("payments: %w", err)
	}
	d.Payments = pay

	rec, err := newRecorder(ctx, cfg, logger)
	if err != nil {
		return d, fmt.Errorf("recorder: %w", err)
	}
	d.Recorder = rec

	if cfg.TelegramToken != "" {
		n, err := tgbot.New(cfg.TelegramToken, cfg.AdminTGIDs)
		if err != nil {
			return d, fmt.Errorf("telegram: %w", err)
		}
		d.Notifier = n
	}
	return d, nil
}

func newProvider(cfg config.Config) (payments.PaymentProvider, error) {
	switch cfg.PaymentProvider {
	case "stripe":
		return stripe.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret), nil
	case "stub":
		return stub.New(cfg.StripeWebhookSecret), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.PaymentProvider)
	}
}

func newRecorder(ctx context.Context, cfg config.Config, logger *slog.Logger) (recorder.Recorder, error) {
	switch cfg.RecorderBackend {
	case "appsscript":
		return recorder.NewAppsScript(cfg.RecorderURL, nil, logger), nil
	case "sheets":
		sh, err := sheets.New(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, err
		}
		if err := sh.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		return sh, nil
	default:
		return nil, fmt.Errorf("unknown recorder backend: %s", cfg.RecorderBackend)
	}
}
