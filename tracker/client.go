package tracker

import "time"

/* Client represents a customer work is billed to
 * Uses value semantics as it represents data, not behavior
 */
type Client struct {
	ID         string
	Name       string
	Color      string
	HourlyRate float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
