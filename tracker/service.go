package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/payload"
)

/* Service represents the business logic layer for time tracking
 * Uses pointer semantics as it's an API, not data
 */

// Notifier receives domain events after successful mutations. The webhook
// dispatcher implements it; a nil Notifier disables event delivery.
type Notifier interface {
	Trigger(ctx context.Context, event webhook.Event, data payload.Data)
}

// UseCase defines the business operations for time tracking
type UseCase interface {
	CreateClient(ctx context.Context, name, color string, hourlyRate float64) (Client, error)
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	UpdateClient(ctx context.Context, id, name, color string, hourlyRate float64) (Client, error)
	DeleteClient(ctx context.Context, id string) error

	CreateProject(ctx context.Context, clientID, name, description string, hourlyRate float64) (Project, error)
	GetProject(ctx context.Context, id string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, id, name, description string, hourlyRate float64) (Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateEntry(ctx context.Context, projectID, description string, startedAt time.Time, endedAt *time.Time) (TimeEntry, error)
	GetEntry(ctx context.Context, id string) (TimeEntry, error)
	ListEntries(ctx context.Context) ([]TimeEntry, error)
	UpdateEntry(ctx context.Context, id, description string, startedAt time.Time, endedAt *time.Time) (TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	Start(ctx context.Context, projectID, description string) (TimeEntry, error)
	Stop(ctx context.Context) (TimeEntry, error)
	Current(ctx context.Context) (TimeEntry, error)

	CreateInvoice(ctx context.Context, data map[string]any)
}

type Service struct {
	Repo   Repository
	Events Notifier
}

// NewService creates a new tracker service with dependency injection
func NewService(repo Repository, events Notifier) *Service {
	return &Service{
		Repo:   repo,
		Events: events,
	}
}

// CreateClient validates and stores a new client
func (s *Service) CreateClient(ctx context.Context, name, color string, hourlyRate float64) (Client, error) {
	if name == "" {
		return Client{}, fmt.Errorf("client name cannot be empty")
	}
	if hourlyRate < 0 {
		return Client{}, fmt.Errorf("hourly rate cannot be negative")
	}

	now := time.Now()
	c := Client{
		ID:         uuid.New().String(),
		Name:       name,
		Color:      color,
		HourlyRate: hourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.Repo.StoreClient(ctx, c); err != nil {
		return Client{}, fmt.Errorf("storing client: %w", err)
	}

	s.notify(ctx, webhook.ClientCreated, clientSnapshot(c))
	return c, nil
}

// GetClient retrieves a client by ID
func (s *Service) GetClient(ctx context.Context, id string) (Client, error) {
	c, err := s.Repo.GetClient(ctx, id)
	if err != nil {
		return Client{}, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// ListClients returns all clients
func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	clients, err := s.Repo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// UpdateClient mutates a client and fires client_updated with the
// before/after field values
func (s *Service) UpdateClient(ctx context.Context, id, name, color string, hourlyRate float64) (Client, error) {
	existing, err := s.Repo.GetClient(ctx, id)
	if err != nil {
		return Client{}, fmt.Errorf("getting client: %w", err)
	}
	if name == "" {
		return Client{}, fmt.Errorf("client name cannot be empty")
	}
	if hourlyRate < 0 {
		return Client{}, fmt.Errorf("hourly rate cannot be negative")
	}

	updated := existing
	updated.Name = name
	updated.Color = color
	updated.HourlyRate = hourlyRate
	updated.UpdatedAt = time.Now()

	if err := s.Repo.UpdateClient(ctx, updated); err != nil {
		return Client{}, fmt.Errorf("updating client: %w", err)
	}

	s.notify(ctx, webhook.ClientUpdated, payload.ClientChange{
		ID:  id,
		Old: payload.ClientFields{Name: existing.Name, Color: existing.Color, HourlyRate: existing.HourlyRate},
		New: payload.ClientFields{Name: updated.Name, Color: updated.Color, HourlyRate: updated.HourlyRate},
	})
	return updated, nil
}

// DeleteClient removes a client permanently
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.Repo.GetClient(ctx, id); err != nil {
		return fmt.Errorf("getting client: %w", err)
	}
	if err := s.Repo.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

// CreateProject validates and stores a new project under a client
func (s *Service) CreateProject(ctx context.Context, clientID, name, description string, hourlyRate float64) (Project, error) {
	if name == "" {
		return Project{}, fmt.Errorf("project name cannot be empty")
	}
	if hourlyRate < 0 {
		return Project{}, fmt.Errorf("hourly rate cannot be negative")
	}
	if _, err := s.Repo.GetClient(ctx, clientID); err != nil {
		return Project{}, fmt.Errorf("getting client: %w", err)
	}

	now := time.Now()
	p := Project{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Name:        name,
		Description: description,
		HourlyRate:  hourlyRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.Repo.StoreProject(ctx, p); err != nil {
		return Project{}, fmt.Errorf("storing project: %w", err)
	}

	s.notify(ctx, webhook.ProjectCreated, projectSnapshot(p))
	return p, nil
}

// GetProject retrieves a project by ID
func (s *Service) GetProject(ctx context.Context, id string) (Project, error) {
	p, err := s.Repo.GetProject(ctx, id)
	if err != nil {
		return Project{}, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	projects, err := s.Repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// UpdateProject mutates a project and fires project_updated with the
// before/after field values
func (s *Service) UpdateProject(ctx context.Context, id, name, description string, hourlyRate float64) (Project, error) {
	existing, err := s.Repo.GetProject(ctx, id)
	if err != nil {
		return Project{}, fmt.Errorf("getting project: %w", err)
	}
	if name == "" {
		return Project{}, fmt.Errorf("project name cannot be empty")
	}
	if hourlyRate < 0 {
		return Project{}, fmt.Errorf("hourly rate cannot be negative")
	}

	updated := existing
	updated.Name = name
	updated.Description = description
	updated.HourlyRate = hourlyRate
	updated.UpdatedAt = time.Now()

	if err := s.Repo.UpdateProject(ctx, updated); err != nil {
		return Project{}, fmt.Errorf("updating project: %w", err)
	}

	s.notify(ctx, webhook.ProjectUpdated, payload.ProjectChange{
		ID:  id,
		Old: payload.ProjectFields{Name: existing.Name, Description: existing.Description, HourlyRate: existing.HourlyRate},
		New: payload.ProjectFields{Name: updated.Name, Description: updated.Description, HourlyRate: updated.HourlyRate},
	})
	return updated, nil
}

// DeleteProject removes a project permanently
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.Repo.GetProject(ctx, id); err != nil {
		return fmt.Errorf("getting project: %w", err)
	}
	if err := s.Repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// CreateEntry stores a finished or running time entry
func (s *Service) CreateEntry(ctx context.Context, projectID, description string, startedAt time.Time, endedAt *time.Time) (TimeEntry, error) {
	if _, err := s.Repo.GetProject(ctx, projectID); err != nil {
		return TimeEntry{}, fmt.Errorf("getting project: %w", err)
	}
	if endedAt != nil && endedAt.Before(startedAt) {
		return TimeEntry{}, fmt.Errorf("entry cannot end before it starts")
	}

	now := time.Now()
	e := TimeEntry{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Description: description,
		StartedAt:   startedAt,
		EndedAt:     endedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.Repo.StoreEntry(ctx, e); err != nil {
		return TimeEntry{}, fmt.Errorf("storing entry: %w", err)
	}

	s.notifyEntry(ctx, webhook.TimeEntryCreated, e)
	return e, nil
}

// GetEntry retrieves a time entry by ID
func (s *Service) GetEntry(ctx context.Context, id string) (TimeEntry, error) {
	e, err := s.Repo.GetEntry(ctx, id)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("getting entry: %w", err)
	}
	return e, nil
}

// ListEntries returns all time entries
func (s *Service) ListEntries(ctx context.Context) ([]TimeEntry, error) {
	entries, err := s.Repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry mutates a time entry in place
func (s *Service) UpdateEntry(ctx context.Context, id, description string, startedAt time.Time, endedAt *time.Time) (TimeEntry, error) {
	existing, err := s.Repo.GetEntry(ctx, id)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("getting entry: %w", err)
	}
	if endedAt != nil && endedAt.Before(startedAt) {
		return TimeEntry{}, fmt.Errorf("entry cannot end before it starts")
	}

	updated := existing
	updated.Description = description
	updated.StartedAt = startedAt
	updated.EndedAt = endedAt
	updated.UpdatedAt = time.Now()

	if err := s.Repo.UpdateEntry(ctx, updated); err != nil {
		return TimeEntry{}, fmt.Errorf("updating entry: %w", err)
	}

	s.notifyEntry(ctx, webhook.TimeEntryUpdated, updated)
	return updated, nil
}

// DeleteEntry removes an entry, firing time_entry_deleted with the
// snapshot captured before deletion
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	existing, err := s.Repo.GetEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("getting entry: %w", err)
	}
	if err := s.Repo.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	s.notifyEntry(ctx, webhook.TimeEntryDeleted, existing)
	return nil
}

/* Start opens a running entry for the project. Only one timer runs at a
 * time: a currently running entry is stopped first, firing its stop event.
 */
func (s *Service) Start(ctx context.Context, projectID, description string) (TimeEntry, error) {
	if _, err := s.Repo.GetProject(ctx, projectID); err != nil {
		return TimeEntry{}, fmt.Errorf("getting project: %w", err)
	}

	if _, err := s.Stop(ctx); err != nil && err != ErrNoTimer {
		return TimeEntry{}, fmt.Errorf("stopping running timer: %w", err)
	}

	now := time.Now()
	e := TimeEntry{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Description: description,
		StartedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.Repo.StoreEntry(ctx, e); err != nil {
		return TimeEntry{}, fmt.Errorf("storing entry: %w", err)
	}
	if err := s.Repo.SetCurrentEntry(ctx, e.ID); err != nil {
		return TimeEntry{}, fmt.Errorf("marking current entry: %w", err)
	}

	s.notifyEntry(ctx, webhook.TimeEntryStarted, e)
	return e, nil
}

// Stop closes the running entry, or returns ErrNoTimer
func (s *Service) Stop(ctx context.Context) (TimeEntry, error) {
	current, err := s.Repo.CurrentEntry(ctx)
	if err != nil {
		if err == ErrNoTimer {
			return TimeEntry{}, ErrNoTimer
		}
		return TimeEntry{}, fmt.Errorf("getting current entry: %w", err)
	}

	now := time.Now()
	current.EndedAt = &now
	current.UpdatedAt = now

	if err := s.Repo.UpdateEntry(ctx, current); err != nil {
		return TimeEntry{}, fmt.Errorf("updating entry: %w", err)
	}
	if err := s.Repo.ClearCurrentEntry(ctx); err != nil {
		return TimeEntry{}, fmt.Errorf("clearing current entry: %w", err)
	}

	s.notifyEntry(ctx, webhook.TimeEntryStopped, current)
	return current, nil
}

// Current returns the running entry, or ErrNoTimer
func (s *Service) Current(ctx context.Context) (TimeEntry, error) {
	return s.Repo.CurrentEntry(ctx)
}

// CreateInvoice fires on_invoice_created with caller-supplied data.
// Invoices themselves are not persisted here.
func (s *Service) CreateInvoice(ctx context.Context, data map[string]any) {
	s.notify(ctx, webhook.InvoiceCreated, payload.InvoiceData(data))
}

/* Aggregate queries used by the payload builder. Service implements
 * payload.Aggregates.
 */

// ProjectTrackedHours sums tracked hours across all entries of a project
func (s *Service) ProjectTrackedHours(ctx context.Context, projectID string) (float64, error) {
	entries, err := s.Repo.ListEntriesByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing project entries: %w", err)
	}

	var hours float64
	for _, e := range entries {
		hours += e.Duration().Hours()
	}
	return hours, nil
}

// MonthToDate aggregates hours and earnings for the calendar month
// containing now, across all projects
func (s *Service) MonthToDate(ctx context.Context, now time.Time) (payload.MonthSummary, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	entries, err := s.Repo.ListEntriesStartedBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return payload.MonthSummary{}, fmt.Errorf("listing month entries: %w", err)
	}

	projects := make(map[string]Project)
	clients := make(map[string]Client)

	var summary payload.MonthSummary
	for _, e := range entries {
		p, ok := projects[e.ProjectID]
		if !ok {
			p, err = s.Repo.GetProject(ctx, e.ProjectID)
			if err != nil {
				continue
			}
			projects[e.ProjectID] = p
		}
		c, ok := clients[p.ClientID]
		if !ok {
			c, err = s.Repo.GetClient(ctx, p.ClientID)
			if err != nil {
				continue
			}
			clients[p.ClientID] = c
		}

		summary.Hours += e.Duration().Hours()
		summary.Earnings += e.Earnings(EffectiveHourlyRate(p, c))
	}
	return summary, nil
}

// Helper functions

func (s *Service) notify(ctx context.Context, event webhook.Event, data payload.Data) {
	if s.Events == nil {
		return
	}
	s.Events.Trigger(ctx, event, data)
}

// notifyEntry resolves the entry's project and client before triggering.
// A resolution failure skips the event: dispatch is best-effort and must
// never fail the mutation.
func (s *Service) notifyEntry(ctx context.Context, event webhook.Event, e TimeEntry) {
	if s.Events == nil {
		return
	}

	p, err := s.Repo.GetProject(ctx, e.ProjectID)
	if err != nil {
		return
	}
	c, err := s.Repo.GetClient(ctx, p.ClientID)
	if err != nil {
		return
	}

	s.Events.Trigger(ctx, event, payload.TimeEntrySnapshot{
		ID:          e.ID,
		Description: e.Description,
		StartedAt:   e.StartedAt,
		EndedAt:     e.EndedAt,
		Duration:    e.Duration(),
		Project:     payload.ProjectSummary{ID: p.ID, Name: p.Name, HourlyRate: p.HourlyRate},
		Client:      payload.ClientSummary{ID: c.ID, Name: c.Name, HourlyRate: c.HourlyRate},
	})
}

func clientSnapshot(c Client) payload.ClientSnapshot {
	return payload.ClientSnapshot{
		ID:         c.ID,
		Name:       c.Name,
		Color:      c.Color,
		HourlyRate: c.HourlyRate,
	}
}

func projectSnapshot(p Project) payload.ProjectSnapshot {
	return payload.ProjectSnapshot{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		HourlyRate:  p.HourlyRate,
	}
}
