package webhook

import "time"

/* Delivery represents one delivery attempt lineage for a single
 * (event occurrence, webhook) pair. The payload is captured once at
 * creation and never re-serialized afterwards, so the signature stays
 * verifiable against the exact transmitted bytes.
 */
type Delivery struct {
	ID            string
	WebhookID     string
	Event         Event
	Payload       []byte
	Status        Status
	Attempts      int
	LastAttemptAt *time.Time
	NextRetryAt   *time.Time // set only while retrying
	ResponseCode  *int
	CreatedAt     time.Time
}

// Backoff returns the delay before the next attempt after the given
// number of failed attempts: 2^attempts minutes (2m, 4m, 8m, ...).
func Backoff(attempts int) time.Duration {
	return time.Duration(1<<uint(attempts)) * time.Minute
}
