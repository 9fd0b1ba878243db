package webhook

import "fmt"

/* Status represents the current state of a delivery record
 * Follows the lifecycle: Pending -> Delivered/Retrying/Failed,
 * Retrying -> Delivered/Retrying/Failed. Transitions never go backward.
 */
type Status int

const (
	Pending Status = iota + 1
	Delivered
	Retrying
	Failed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Delivered:
		return "delivered"
	case Retrying:
		return "retrying"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string
func NewStatus(str string) Status {
	switch str {
	case "pending":
		return Pending
	case "delivered":
		return Delivered
	case "retrying":
		return Retrying
	case "failed":
		return Failed
	default:
		return Pending
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}

// IsFinal returns true if the status is a terminal state
func (s Status) IsFinal() bool {
	return s == Delivered || s == Failed
}

// CanTransition reports whether moving from s to next is a legal step
func (s Status) CanTransition(next Status) bool {
	if s.IsFinal() {
		return false
	}
	switch next {
	case Delivered, Retrying, Failed:
		return true
	default:
		return false
	}
}
