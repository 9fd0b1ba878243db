package tracker

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNoTimer  = errors.New("no timer running")
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 */

// ClientReader provides read operations for clients
type ClientReader interface {
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
}

// ClientWriter provides write operations for clients
type ClientWriter interface {
	StoreClient(ctx context.Context, c Client) (string, error)
	UpdateClient(ctx context.Context, c Client) error
	DeleteClient(ctx context.Context, id string) error
}

// ProjectReader provides read operations for projects
type ProjectReader interface {
	GetProject(ctx context.Context, id string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
}

// ProjectWriter provides write operations for projects
type ProjectWriter interface {
	StoreProject(ctx context.Context, p Project) (string, error)
	UpdateProject(ctx context.Context, p Project) error
	DeleteProject(ctx context.Context, id string) error
}

// EntryReader provides read operations for time entries
type EntryReader interface {
	GetEntry(ctx context.Context, id string) (TimeEntry, error)
	ListEntries(ctx context.Context) ([]TimeEntry, error)
	ListEntriesByProject(ctx context.Context, projectID string) ([]TimeEntry, error)
	/* ListEntriesStartedBetween returns entries whose StartedAt falls in
	 * [from, to). Used for the calendar-month aggregates.
	 */
	ListEntriesStartedBetween(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	// CurrentEntry returns the running entry, or ErrNoTimer
	CurrentEntry(ctx context.Context) (TimeEntry, error)
}

// EntryWriter provides write operations for time entries
type EntryWriter interface {
	StoreEntry(ctx context.Context, e TimeEntry) (string, error)
	UpdateEntry(ctx context.Context, e TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
	SetCurrentEntry(ctx context.Context, id string) error
	ClearCurrentEntry(ctx context.Context) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	ClientReader
	ClientWriter
	ProjectReader
	ProjectWriter
	EntryReader
	EntryWriter
	Close(ctx context.Context) error
}
