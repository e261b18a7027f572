package models

import "time"

// Journal event types.
const (
	EventReading = "READING"
	EventAlert   = "ALERT"
	EventFeeding = "FEEDING"
	EventDismiss = "DISMISS"
)

// DashboardEvent is a single journal entry.
type DashboardEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // READING | ALERT | FEEDING | DISMISS
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
