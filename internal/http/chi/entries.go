package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tracklet/tracklet/tracker"
)

// entryRequest represents a time entry in the web layer
type entryRequest struct {
	ProjectID   string     `json:"project_id"`
	Description string     `json:"description"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
}

// startRequest represents a timer start in the web layer
type startRequest struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

// entryResponse represents a time entry in the web layer
type entryResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Description     string     `json:"description"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Running         bool       `json:"running"`
	DurationMinutes float64    `json:"duration_minutes"`
}

func toEntryResponse(e tracker.TimeEntry) entryResponse {
	return entryResponse{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		Description:     e.Description,
		StartedAt:       e.StartedAt,
		EndedAt:         e.EndedAt,
		Running:         e.Running(),
		DurationMinutes: e.Duration().Minutes(),
	}
}

func getEntries(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := trackerService.ListEntries(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]entryResponse, 0, len(all))
		for _, e := range all {
			result = append(result, toEntryResponse(e))
		}
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func getEntry(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e, err := trackerService.GetEntry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func getCurrentEntry(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e, err := trackerService.Current(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func postEntry(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var er entryRequest
		if err := json.NewDecoder(r.Body).Decode(&er); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e, err := trackerService.CreateEntry(r.Context(), er.ProjectID, er.Description, er.StartedAt, er.EndedAt)
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func putEntry(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var er entryRequest
		if err := json.NewDecoder(r.Body).Decode(&er); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e, err := trackerService.UpdateEntry(r.Context(), chi.URLParam(r, "id"), er.Description, er.StartedAt, er.EndedAt)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func deleteEntry(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := trackerService.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func startTimer(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sr startRequest
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e, err := trackerService.Start(r.Context(), sr.ProjectID, sr.Description)
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func stopTimer(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e, err := trackerService.Stop(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if err := json.NewEncoder(w).Encode(toEntryResponse(e)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func postInvoice(trackerService tracker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var data map[string]any
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		trackerService.CreateInvoice(r.Context(), data)
		w.WriteHeader(http.StatusAccepted)
	})
}
