package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tournament-entry/internal/config"
	"tournament-entry/internal/models"
	"tournament-entry/internal/payments"
	"tournament-entry/internal/pricing"
)

// checkoutHandler turns an entry form submission into a hosted checkout
// session. The amount charged comes from the pricing mode only; the
// client's totalPrice is checked for presence and then discarded.
type checkoutHandler struct {
	cfg config.Config
	pay payments.PaymentProvider
	log *slog.Logger
}

func (h *checkoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	log := requestLogger(h.log, r)

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Error("error creating checkout session", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !models.Present(raw["totalPrice"]) {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	delete(raw, "totalPrice")
	entry := models.EntryFromJSON(raw)

	name := entry.Name()
	if name == "" {
		name = "Player"
	}
	site := h.cfg.SiteURL
	if site == "" {
		site = config.DefaultSiteURL
	}

	sessionID, err := h.pay.CreateCheckoutSession(r.Context(), payments.CheckoutSessionInput{
		ProductName: "BATTS Tournament Entry - " + name,
		Description: "Tournament entry fee",
		UnitAmount:  h.cfg.PricingMode.UnitAmount(),
		Currency:    pricing.Currency,
		SuccessURL:  site + "/index.html?payment_success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   site + "/index.html?payment_canceled=true",
		Metadata:    entry.Metadata(),
	})
	if err != nil {
		log.Error("error creating checkout session", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("checkout session created", "session_id", sessionID, "pricing_mode", string(h.cfg.PricingMode))
	writeJSON(w, http.StatusOK, models.CheckoutSessionResponse{SessionID: sessionID})
}
