package geofence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Target is one physical location an organization accepts clock events
// from: a circular zone around a center point. Targets are read-only
// from the ledger's perspective; administration happens elsewhere.
type Target struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID      `gorm:"column:organization_id;type:uuid;not null;index"`
	Name           string         `gorm:"column:name;type:varchar(120);not null"`
	Latitude       float64        `gorm:"column:latitude;not null"`
	Longitude      float64        `gorm:"column:longitude;not null"`
	RadiusMeters   float64        `gorm:"column:radius_meters;not null"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Target) TableName() string {
	return "geofence_targets"
}
