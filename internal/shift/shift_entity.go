package shift

import (
	"strings"
	"time"

	"geoshift/internal/geofence"

	"github.com/google/uuid"
)

const (
	StatusOpen    = "open"
	StatusClosed  = "closed"
	StatusStale   = "stale"
	StatusRevised = "revised"
)

const (
	ResolutionForgot      = "forgot"
	ResolutionActualHours = "actual_hours"
)

// Shift is one work session. Rows are the audit record and are never
// deleted; closed and revised are terminal states.
//
// The at-most-one-open-shift invariant is enforced in the database by
// the partial unique index uq_shifts_user_open on (user_id) WHERE
// status = 'open', belt-and-braces with the per-user advisory lock the
// repository takes inside the clock transaction.
type Shift struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	OrganizationID uuid.UUID  `gorm:"column:organization_id;type:uuid;not null;index"`
	LocationID     *uuid.UUID `gorm:"column:location_id;type:uuid"`

	Status    string    `gorm:"column:status;type:varchar(16);not null;default:open;index"`
	ShiftDate time.Time `gorm:"column:shift_date;type:date;not null;index"`

	ClockInAt  time.Time  `gorm:"column:clock_in_at;type:timestamptz;not null"`
	ClockOutAt *time.Time `gorm:"column:clock_out_at;type:timestamptz"`

	ClockInVerified       bool      `gorm:"column:clock_in_verified;not null;default:false"`
	ClockInDistanceMeters float64   `gorm:"column:clock_in_distance_m"`
	ClockInAccuracyMeters float64   `gorm:"column:clock_in_accuracy_m"`
	ClockInFlags          string    `gorm:"column:clock_in_flags;type:text"`
	ClockInSampleAt       time.Time `gorm:"column:clock_in_sample_at;type:timestamptz"`

	ClockOutVerified       bool       `gorm:"column:clock_out_verified;not null;default:false"`
	ClockOutDistanceMeters float64    `gorm:"column:clock_out_distance_m"`
	ClockOutAccuracyMeters float64    `gorm:"column:clock_out_accuracy_m"`
	ClockOutFlags          string     `gorm:"column:clock_out_flags;type:text"`
	ClockOutSampleAt       *time.Time `gorm:"column:clock_out_sample_at;type:timestamptz"`

	DurationMinutes    *int `gorm:"column:duration_minutes"`
	BreakMinutes       *int `gorm:"column:break_minutes"`
	NetDurationMinutes *int `gorm:"column:net_duration_minutes"`
	CrossedMidnight    bool `gorm:"column:crossed_midnight;not null;default:false"`

	IsRevised      bool    `gorm:"column:is_revised;not null;default:false"`
	ResolutionNote *string `gorm:"column:resolution_note;type:text"`
	Notes          *string `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// joinFlags flattens a verification flag set into the text column.
func joinFlags(flags []geofence.Flag) string {
	if len(flags) == 0 {
		return ""
	}
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func splitFlags(s string) []geofence.Flag {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	flags := make([]geofence.Flag, len(parts))
	for i, p := range parts {
		flags[i] = geofence.Flag(p)
	}
	return flags
}

func (s *Shift) applyClockInVerification(v geofence.Result) {
	s.ClockInVerified = v.Verified
	s.ClockInDistanceMeters = v.DistanceMeters
	s.ClockInAccuracyMeters = v.AccuracyMeters
	s.ClockInFlags = joinFlags(v.Flags)
	s.ClockInSampleAt = v.SampleAt
}

func (s *Shift) applyClockOutVerification(v geofence.Result) {
	s.ClockOutVerified = v.Verified
	s.ClockOutDistanceMeters = v.DistanceMeters
	s.ClockOutAccuracyMeters = v.AccuracyMeters
	s.ClockOutFlags = joinFlags(v.Flags)
	sampleAt := v.SampleAt
	s.ClockOutSampleAt = &sampleAt
}
