package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single organization.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}
