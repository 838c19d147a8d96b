package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tournament-entry/internal/config"
	"tournament-entry/internal/models"
	"tournament-entry/internal/payments"
	"tournament-entry/internal/recorder"
)

// Notifier is told about every paid entry after it has been recorded.
type Notifier interface {
	EntryPaid(ctx context.Context, rec models.ForwardedRecord) error
}

type Deps struct {
	Config   config.Config
	Payments payments.PaymentProvider
	Recorder recorder.Recorder
	Notifier Notifier // optional
	Logger   *slog.Logger
	Now      func() time.Time
}

// Function paths. The /.netlify/functions prefix keeps existing form pages
// working unchanged.
var functionPrefixes = []string{"", "/.netlify/functions"}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	checkout := &checkoutHandler{cfg: d.Config, pay: d.Payments, log: d.Logger}
	hook := &webhookHandler{
		cfg:    d.Config,
		pay:    d.Payments,
		rec:    d.Recorder,
		notify: d.Notifier,
		log:    d.Logger,
		now:    d.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "provider": d.Payments.Name()})
	})

	for _, p := range functionPrefixes {
		r.With(cors).Handle(p+"/create-checkout-session", checkout)
		r.With(cors).Handle(p+"/stripe-webhook", hook)
	}

	if d.Config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(d.Config.StaticDir)))
	}
	return r
}

func New(d Deps) *http.Server {
	return &http.Server{
		Addr:              d.Config.HTTPAddr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func requestLogger(base *slog.Logger, r *http.Request) *slog.Logger {
	return base.With("request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path)
}
