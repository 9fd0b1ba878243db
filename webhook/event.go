package webhook

import "fmt"

/* Event is the closed set of domain occurrences that can trigger a webhook.
 * New kinds are added at compile time only; configs referencing unknown
 * kinds are rejected at validation time.
 */
type Event string

const (
	TimeEntryCreated Event = "time_entry_created"
	TimeEntryUpdated Event = "time_entry_updated"
	TimeEntryDeleted Event = "time_entry_deleted"
	TimeEntryStarted Event = "time_entry_started"
	TimeEntryStopped Event = "time_entry_stopped"
	ProjectCreated   Event = "project_created"
	ProjectUpdated   Event = "project_updated"
	ClientCreated    Event = "client_created"
	ClientUpdated    Event = "client_updated"
	InvoiceCreated   Event = "on_invoice_created"
)

// Events returns all known event kinds
func Events() []Event {
	return []Event{
		TimeEntryCreated,
		TimeEntryUpdated,
		TimeEntryDeleted,
		TimeEntryStarted,
		TimeEntryStopped,
		ProjectCreated,
		ProjectUpdated,
		ClientCreated,
		ClientUpdated,
		InvoiceCreated,
	}
}

// Validate checks if the event kind is known
func (e Event) Validate() error {
	for _, known := range Events() {
		if e == known {
			return nil
		}
	}
	return fmt.Errorf("unknown event kind: %s", e)
}

// String returns the wire name of the event
func (e Event) String() string {
	return string(e)
}
