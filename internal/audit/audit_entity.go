package audit

import (
	"time"

	"github.com/google/uuid"
)

// ShiftAuditEvent is an immutable record of a shift lifecycle event,
// written by the consumer. The manager review surface reads these;
// nothing updates or deletes them.
type ShiftAuditEvent struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID         uuid.UUID `gorm:"column:shift_id;type:uuid;not null;uniqueIndex:uq_shift_audit_event,priority:1"`
	EventType       string    `gorm:"column:event_type;type:varchar(40);not null;uniqueIndex:uq_shift_audit_event,priority:2"`
	OrganizationID  uuid.UUID `gorm:"column:organization_id;type:uuid;not null;index"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Resolution      *string   `gorm:"column:resolution;type:varchar(20)"`
	ResolvedBy      *string   `gorm:"column:resolved_by;type:uuid"`
	DurationMinutes *int      `gorm:"column:duration_minutes"`
	Payload         []byte    `gorm:"column:payload;type:jsonb"`
	OccurredAt      time.Time `gorm:"column:occurred_at;type:timestamptz;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (ShiftAuditEvent) TableName() string {
	return "shift_audit_events"
}
