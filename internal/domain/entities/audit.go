package entities

import "time"

// Audit outcomes.
const (
	OutcomeRefused   = "refused"
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// AuditEntry represents a logged action in the system.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	Target    string         `json:"target"`
	Outcome   string         `json:"outcome"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
