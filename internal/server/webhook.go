package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"tournament-entry/internal/config"
	"tournament-entry/internal/models"
	"tournament-entry/internal/payments"
	"tournament-entry/internal/pricing"
	"tournament-entry/internal/recorder"
	"tournament-entry/internal/util"
)

const maxWebhookBody = 1 << 20

// webhookHandler acknowledges payment provider notifications and forwards
// completed checkouts to the recorder. Once the signature checks out the
// provider always gets 200: the payment has happened whatever the recorder
// does.
type webhookHandler struct {
	cfg    config.Config
	pay    payments.PaymentProvider
	rec    recorder.Recorder
	notify Notifier
	log    *slog.Logger
	now    func() time.Time
}

func (h *webhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	log := requestLogger(h.log, r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Error("error processing webhook", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ev, err := h.pay.ParseWebhook(r.Context(), body, util.LowerHeaders(r.Header))
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			log.Warn("webhook signature verification failed", "err", err)
			writeError(w, http.StatusBadRequest, "Webhook signature verification failed")
			return
		}
		log.Error("error processing webhook", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if ev.Type == payments.EventCheckoutCompleted {
		h.forward(r, log, ev)
	} else {
		log.Info("webhook event ignored", "type", ev.Type)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *webhookHandler) forward(r *http.Request, log *slog.Logger, ev payments.Event) {
	rec := models.ForwardedRecord{
		Entry: models.EntryFromMetadata(ev.Metadata),
		Payment: models.PaymentConfirmation{
			Status:    models.StatusPaid,
			PaidAt:    util.FormatISO(h.now()),
			SessionID: ev.SessionID,
			Amount:    pricing.FormatMinorUnits(ev.AmountTotal),
		},
		APIKey: h.cfg.RecorderAPIKey,
	}

	log.Info("TOURNAMENT ENTRY DATA",
		"name", rec.Entry["name"],
		"email", rec.Entry["email"],
		"gender", rec.Entry["gender"],
		"amount", "£"+rec.Payment.Amount,
		"payment_status", rec.Payment.Status,
		"session_id", rec.Payment.SessionID,
	)

	ctx := r.Context()
	if err := h.rec.Record(ctx, rec); err != nil {
		attrs := []any{"err", err, "session_id", ev.SessionID}
		var se *recorder.StatusError
		if errors.As(err, &se) {
			attrs = append(attrs, "response_status", se.Code, "response_data", se.Body)
		}
		log.Error("error sending entry to recording endpoint", attrs...)
	}

	if h.notify != nil {
		if err := h.notify.EntryPaid(ctx, rec); err != nil {
			log.Warn("organiser notification failed", "err", err, "session_id", ev.SessionID)
		}
	}
}
