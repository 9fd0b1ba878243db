package chi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tracklet/tracklet/webhook"
)

// webhookRequest represents a webhook config in the web layer.
// The secret is accepted on input but never echoed back.
type webhookRequest struct {
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Secret        string   `json:"secret"`
	Events        []string `json:"events"`
	Active        *bool    `json:"active"`
	RetryAttempts int      `json:"retry_attempts"`
	TimeoutMS     int      `json:"timeout_ms"`
}

// webhookResponse represents a webhook config in the web layer
type webhookResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Events        []string  `json:"events"`
	Active        bool      `json:"active"`
	RetryAttempts int       `json:"retry_attempts"`
	TimeoutMS     int       `json:"timeout_ms"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// deliveryResponse represents a delivery attempt record in the web layer
type deliveryResponse struct {
	ID            string     `json:"id"`
	WebhookID     string     `json:"webhook_id"`
	Event         string     `json:"event"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty"`
	ResponseCode  *int       `json:"response_code,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toWebhookConfig(wr webhookRequest) webhook.Config {
	events := make([]webhook.Event, 0, len(wr.Events))
	for _, e := range wr.Events {
		events = append(events, webhook.Event(e))
	}
	active := true
	if wr.Active != nil {
		active = *wr.Active
	}
	return webhook.Config{
		Name:          wr.Name,
		URL:           wr.URL,
		Secret:        wr.Secret,
		Events:        events,
		Active:        active,
		RetryAttempts: wr.RetryAttempts,
		TimeoutMS:     wr.TimeoutMS,
	}
}

func toWebhookResponse(cfg webhook.Config) webhookResponse {
	events := make([]string, 0, len(cfg.Events))
	for _, e := range cfg.Events {
		events = append(events, e.String())
	}
	return webhookResponse{
		ID:            cfg.ID,
		Name:          cfg.Name,
		URL:           cfg.URL,
		Events:        events,
		Active:        cfg.Active,
		RetryAttempts: cfg.RetryAttempts,
		TimeoutMS:     cfg.TimeoutMS,
		CreatedAt:     cfg.CreatedAt,
		UpdatedAt:     cfg.UpdatedAt,
	}
}

func toDeliveryResponse(d webhook.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:            d.ID,
		WebhookID:     d.WebhookID,
		Event:         d.Event.String(),
		Status:        d.Status.String(),
		Attempts:      d.Attempts,
		LastAttemptAt: d.LastAttemptAt,
		NextRetryAt:   d.NextRetryAt,
		ResponseCode:  d.ResponseCode,
		CreatedAt:     d.CreatedAt,
	}
}

func getWebhooks(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := webhookService.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]webhookResponse, 0, len(all))
		for _, cfg := range all {
			result = append(result, toWebhookResponse(cfg))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func getWebhook(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := webhookService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toWebhookResponse(cfg)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func postWebhook(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var wr webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&wr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg, err := webhookService.Create(r.Context(), toWebhookConfig(wr))
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toWebhookResponse(cfg)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func putWebhook(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var wr webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&wr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg := toWebhookConfig(wr)
		cfg.ID = chi.URLParam(r, "id")
		if err := webhookService.Update(r.Context(), cfg); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func deleteWebhook(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := webhookService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func getDeliveries(webhookService webhook.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		deliveries, err := webhookService.Deliveries(r.Context(), chi.URLParam(r, "id"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]deliveryResponse, 0, len(deliveries))
		for _, d := range deliveries {
			result = append(result, toDeliveryResponse(d))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
