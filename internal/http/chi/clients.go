package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tracklet/tracklet/tracker"
)

/* HTTP layer DTOs for the tracker API
 * Separate from domain entities to avoid leaking internal structure
 */

// clientRequest represents a client in the web layer
type clientRequest struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	HourlyRate float64 `json:"hourly_rate"`
}

// clientResponse represents a client in the web layer
type clientResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	HourlyRate float64   `json:"hourly_rate"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toClientResponse(c tracker.Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Color:      c.Color,
		HourlyRate: c.HourlyRate,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func getClients(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := trackerService.ListClients(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]clientResponse, 0, len(all))
		for _, c := range all {
			result = append(result, toClientResponse(c))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func getClient(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := trackerService.GetClient(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toClientResponse(c)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func postClient(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cr clientRequest
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := trackerService.CreateClient(r.Context(), cr.Name, cr.Color, cr.HourlyRate)
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toClientResponse(c)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func putClient(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cr clientRequest
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := trackerService.UpdateClient(r.Context(), chi.URLParam(r, "id"), cr.Name, cr.Color, cr.HourlyRate)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toClientResponse(c)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func deleteClient(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := trackerService.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
