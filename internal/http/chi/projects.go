package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tracklet/tracklet/tracker"
)

// projectRequest represents a project in the web layer
type projectRequest struct {
	ClientID    string  `json:"client_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourly_rate"`
}

// projectResponse represents a project in the web layer
type projectResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectResponse(p tracker.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		HourlyRate:  p.HourlyRate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func getProjects(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := trackerService.ListProjects(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]projectResponse, 0, len(all))
		for _, p := range all {
			result = append(result, toProjectResponse(p))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func getProject(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := trackerService.GetProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toProjectResponse(p)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func postProject(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pr projectRequest
		if err := json.NewDecoder(r.Body).Decode(&pr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := trackerService.CreateProject(r.Context(), pr.ClientID, pr.Name, pr.Description, pr.HourlyRate)
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toProjectResponse(p)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func putProject(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pr projectRequest
		if err := json.NewDecoder(r.Body).Decode(&pr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := trackerService.UpdateProject(r.Context(), chi.URLParam(r, "id"), pr.Name, pr.Description, pr.HourlyRate)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toProjectResponse(p)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func deleteProject(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := trackerService.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
