package orgpolicy

import (
	"time"

	"github.com/google/uuid"
)

// Override holds an organization's deviations from the system-wide
// policy defaults. Nil fields fall back to the defaults; a row only
// exists for organizations that changed something.
type Override struct {
	ID                  uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID      uuid.UUID  `gorm:"column:organization_id;type:uuid;not null;uniqueIndex"`
	Timezone            *string    `gorm:"column:timezone;type:varchar(64)"`
	StaleThresholdHours *int       `gorm:"column:stale_threshold_hours"`
	BreakThresholdHours *int       `gorm:"column:break_threshold_hours"`
	BreakMinutes        *int       `gorm:"column:break_minutes"`
	MaxAccuracyMeters   *float64   `gorm:"column:max_accuracy_meters"`
	MaxSampleAgeMs      *int64     `gorm:"column:max_sample_age_ms"`
	ReasonMinLength     *int       `gorm:"column:reason_min_length"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (Override) TableName() string {
	return "organization_policies"
}
