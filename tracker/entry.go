package tracker

import "time"

// TimeEntry is one tracked work session. EndedAt is nil while the
// timer is still running.
type TimeEntry struct {
	ID          string
	ProjectID   string
	Description string
	StartedAt   time.Time
	EndedAt     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Running reports whether the entry's timer is still open
func (e TimeEntry) Running() bool {
	return e.EndedAt == nil
}

// Duration returns the tracked duration; running entries count up to now
func (e TimeEntry) Duration() time.Duration {
	if e.EndedAt != nil {
		return e.EndedAt.Sub(e.StartedAt)
	}
	return time.Since(e.StartedAt)
}

// Earnings computes what the entry earned at the given hourly rate
func (e TimeEntry) Earnings(hourlyRate float64) float64 {
	return e.Duration().Hours() * hourlyRate
}
