package events

import "time"

const ShiftLifecycleTopic = "workforce.shift.lifecycle.v1"

const (
	EventTypeShiftClosed  = "shift.closed"
	EventTypeShiftRevised = "shift.revised"
)

// ShiftClosedEvent is emitted when an employee clocks out normally.
type ShiftClosedEvent struct {
	EventType          string    `json:"event_type"`
	ShiftID            string    `json:"shift_id"`
	UserID             string    `json:"user_id"`
	OrganizationID     string    `json:"organization_id"`
	ShiftDate          string    `json:"shift_date"`
	DurationMinutes    int       `json:"duration_minutes"`
	BreakMinutes       int       `json:"break_minutes"`
	NetDurationMinutes int       `json:"net_duration_minutes"`
	CrossedMidnight    bool      `json:"crossed_midnight"`
	OccurredAt         time.Time `json:"occurred_at"`
}
