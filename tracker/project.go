package tracker

import "time"

// Project belongs to a client; a positive hourly rate overrides the
// client's rate for entries tracked against it
type Project struct {
	ID          string
	ClientID    string
	Name        string
	Description string
	HourlyRate  float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveHourlyRate returns the project rate if positive, else the
// client rate, else zero
func EffectiveHourlyRate(p Project, c Client) float64 {
	if p.HourlyRate > 0 {
		return p.HourlyRate
	}
	return c.HourlyRate
}
