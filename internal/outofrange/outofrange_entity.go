package outofrange

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

const (
	RequestTypeClockIn  = "clock_in"
	RequestTypeClockOut = "clock_out"
)

// Request is an employee's plea to clock in or out from outside the
// geofence. Pending requests are decided once; the decision is final.
type Request struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;index:idx_oor_requests_org_status"`

	RequestType            string  `gorm:"column:request_type;type:varchar(16);not null"`
	Reason                 string  `gorm:"column:reason;type:text;not null"`
	DistanceFromGeofenceMeters float64 `gorm:"column:distance_from_geofence_m;not null"`

	Status     string     `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_oor_requests_org_status"`
	DecidedBy  *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt  *time.Time `gorm:"column:decided_at;type:timestamptz"`
	DecisionNote *string  `gorm:"column:decision_note;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Request) TableName() string {
	return "out_of_range_requests"
}
