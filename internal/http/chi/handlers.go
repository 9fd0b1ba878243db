package chi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/tracklet/tracklet/tracker"
	"github.com/tracklet/tracklet/webhook"
)

// Handlers sets up the API routes
func Handlers(ctx context.Context, trackerService tracker.UseCase, webhookService webhook.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("tracklet", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodGet, "/clients", getClients(trackerService))
		r.Method(http.MethodGet, "/clients/{id}", getClient(trackerService))
		r.Method(http.MethodPost, "/clients", postClient(trackerService))
		r.Method(http.MethodPut, "/clients/{id}", putClient(trackerService))
		r.Method(http.MethodDelete, "/clients/{id}", deleteClient(trackerService))

		r.Method(http.MethodGet, "/projects", getProjects(trackerService))
		r.Method(http.MethodGet, "/projects/{id}", getProject(trackerService))
		r.Method(http.MethodPost, "/projects", postProject(trackerService))
		r.Method(http.MethodPut, "/projects/{id}", putProject(trackerService))
		r.Method(http.MethodDelete, "/projects/{id}", deleteProject(trackerService))

		r.Method(http.MethodGet, "/entries", getEntries(trackerService))
		r.Method(http.MethodGet, "/entries/current", getCurrentEntry(trackerService))
		r.Method(http.MethodGet, "/entries/{id}", getEntry(trackerService))
		r.Method(http.MethodPost, "/entries", postEntry(trackerService))
		r.Method(http.MethodPut, "/entries/{id}", putEntry(trackerService))
		r.Method(http.MethodDelete, "/entries/{id}", deleteEntry(trackerService))
		r.Method(http.MethodPost, "/entries/start", startTimer(trackerService))
		r.Method(http.MethodPost, "/entries/stop", stopTimer(trackerService))

		r.Method(http.MethodPost, "/invoices", postInvoice(trackerService))

		r.Method(http.MethodGet, "/webhooks", getWebhooks(webhookService))
		r.Method(http.MethodGet, "/webhooks/{id}", getWebhook(webhookService))
		r.Method(http.MethodPost, "/webhooks", postWebhook(webhookService))
		r.Method(http.MethodPut, "/webhooks/{id}", putWebhook(webhookService))
		r.Method(http.MethodDelete, "/webhooks/{id}", deleteWebhook(webhookService))
		r.Method(http.MethodGet, "/webhooks/{id}/deliveries", getDeliveries(webhookService))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, webhook.ErrNotFound),
		errors.Is(err, tracker.ErrNotFound),
		errors.Is(err, tracker.ErrNoTimer):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, webhook.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, webhook.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
