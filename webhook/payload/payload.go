package payload

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

/* Payload building for outbound webhook requests.
 *
 * Every request body has the envelope shape
 *   { "event": string, "timestamp": ISO-8601 UTC, "data": object }
 * where data is produced by one of a closed set of variants. Each variant
 * serializes itself; the caller picks the variant for the event instead of
 * branching on runtime types.
 */

// Envelope is the top-level shape of every webhook payload
type Envelope struct {
	Event     string          `json:"event"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON returns the JSON encoding of the envelope with the
// timestamp rendered as an ISO-8601 UTC string
func (e Envelope) MarshalJSON() ([]byte, error) {
	type Alias Envelope
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}

// MonthSummary aggregates tracked time for a calendar month
type MonthSummary struct {
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

/* Aggregates provides the read-only store queries the builder needs to
 * enrich time entry payloads. Implemented by the tracker repository.
 */
type Aggregates interface {
	// ProjectTrackedHours sums tracked hours across all entries of a
	// project, not time-bounded
	ProjectTrackedHours(ctx context.Context, projectID string) (float64, error)
	// MonthToDate aggregates hours and earnings for the calendar month
	// containing now
	MonthToDate(ctx context.Context, now time.Time) (MonthSummary, error)
}

/* Data is the closed union of payload variants. The marshal method is
 * unexported so the set of variants is fixed at compile time.
 */
type Data interface {
	marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error)
}

// ClientSummary is the client as embedded in payloads
type ClientSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
}

// ProjectSummary is the project as embedded in payloads
type ProjectSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
}

/* TimeEntrySnapshot is the variant for all time entry events.
 * The effective hourly rate is the project rate when positive, otherwise
 * the client rate; earnings are duration-hours times that rate.
 */
type TimeEntrySnapshot struct {
	ID          string
	Description string
	StartedAt   time.Time
	EndedAt     *time.Time
	Duration    time.Duration
	Project     ProjectSummary
	Client      ClientSummary
}

// EffectiveHourlyRate returns the project rate if positive, else the
// client rate, else zero
func (s TimeEntrySnapshot) EffectiveHourlyRate() float64 {
	if s.Project.HourlyRate > 0 {
		return s.Project.HourlyRate
	}
	return s.Client.HourlyRate
}

func (s TimeEntrySnapshot) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	rate := s.EffectiveHourlyRate()
	hours := s.Duration.Hours()

	projectTotal, err := agg.ProjectTrackedHours(ctx, s.Project.ID)
	if err != nil {
		return nil, fmt.Errorf("querying project total: %w", err)
	}
	month, err := agg.MonthToDate(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("querying month aggregates: %w", err)
	}

	doc := struct {
		ID                string         `json:"id"`
		Description       string         `json:"description"`
		StartedAt         time.Time      `json:"startedAt"`
		EndedAt           *time.Time     `json:"endedAt,omitempty"`
		DurationMinutes   float64        `json:"durationMinutes"`
		Client            ClientSummary  `json:"client"`
		Project           ProjectSummary `json:"project"`
		HourlyRate        float64        `json:"hourlyRate"`
		Earnings          float64        `json:"earnings"`
		ProjectTotalHours float64        `json:"projectTotalHours"`
		Month             MonthSummary   `json:"currentMonth"`
	}{
		ID:                s.ID,
		Description:       s.Description,
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		DurationMinutes:   s.Duration.Minutes(),
		Client:            s.Client,
		Project:           s.Project,
		HourlyRate:        rate,
		Earnings:          hours * rate,
		ProjectTotalHours: projectTotal,
		Month:             month,
	}
	return json.Marshal(doc)
}

// ProjectSnapshot is the variant for project_created
type ProjectSnapshot struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"clientId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
}

func (s ProjectSnapshot) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	return json.Marshal(s)
}

// ClientSnapshot is the variant for client_created
type ClientSnapshot struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	HourlyRate float64 `json:"hourlyRate"`
}

func (s ClientSnapshot) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	return json.Marshal(s)
}

// ProjectFields captures the mutable project fields for update diffs
type ProjectFields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
}

// ProjectChange is the variant for project_updated, carrying the mutable
// fields immediately before and after the mutation
type ProjectChange struct {
	ID  string
	Old ProjectFields
	New ProjectFields
}

func (c ProjectChange) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	return json.Marshal(struct {
		ID        string        `json:"id"`
		OldValues ProjectFields `json:"oldValues"`
		NewValues ProjectFields `json:"newValues"`
	}{c.ID, c.Old, c.New})
}

// ClientFields captures the mutable client fields for update diffs
type ClientFields struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	HourlyRate float64 `json:"hourlyRate"`
}

// ClientChange is the variant for client_updated
type ClientChange struct {
	ID  string
	Old ClientFields
	New ClientFields
}

func (c ClientChange) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	return json.Marshal(struct {
		ID        string       `json:"id"`
		OldValues ClientFields `json:"oldValues"`
		NewValues ClientFields `json:"newValues"`
	}{c.ID, c.Old, c.New})
}

// InvoiceData is the variant for on_invoice_created; the trigger supplies
// arbitrary structured data
type InvoiceData map[string]any

func (d InvoiceData) marshalData(ctx context.Context, agg Aggregates, now time.Time) ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

var emptyObject = json.RawMessage(`{}`)

// Builder turns an event kind plus a data variant into the transport-ready
// JSON document
type Builder struct {
	Agg Aggregates
	Now func() time.Time
}

// NewBuilder creates a payload builder backed by the given aggregate source
func NewBuilder(agg Aggregates) *Builder {
	return &Builder{
		Agg: agg,
		Now: time.Now,
	}
}

/* Build produces the envelope bytes for one event occurrence.
 * A variant that fails to serialize (or whose aggregate queries fail)
 * degrades to an empty data object instead of returning an error: a bad
 * payload for one webhook must never block dispatch to the others.
 */
func (b *Builder) Build(ctx context.Context, event string, data Data) []byte {
	now := b.Now().UTC()

	raw := emptyObject
	if data != nil {
		if encoded, err := data.marshalData(ctx, b.Agg, now); err == nil {
			raw = encoded
		}
	}

	env := Envelope{
		Event:     event,
		Timestamp: now,
		Data:      raw,
	}
	encoded, err := json.Marshal(env)
	if err != nil {
		// only reachable if a variant emitted invalid JSON
		encoded = []byte(fmt.Sprintf(`{"event":%q,"timestamp":%q,"data":{}}`, event, now.Format(time.RFC3339)))
	}
	return encoded
}
