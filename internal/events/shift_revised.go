package events

import "time"

// ShiftRevisedEvent is emitted when a manager resolves a stale shift.
type ShiftRevisedEvent struct {
	EventType          string    `json:"event_type"`
	ShiftID            string    `json:"shift_id"`
	UserID             string    `json:"user_id"`
	OrganizationID     string    `json:"organization_id"`
	Resolution         string    `json:"resolution"`
	ResolvedBy         string    `json:"resolved_by"`
	DurationMinutes    int       `json:"duration_minutes"`
	OccurredAt         time.Time `json:"occurred_at"`
}
