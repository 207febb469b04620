package geofence

import (
	"context"

	"geoshift/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=target_repo.go -destination=mock/target_repo_mock.go -package=mock
type Repository interface {
	FindActiveByOrganization(ctx context.Context, organizationID string) ([]Target, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByOrganization(ctx context.Context, organizationID string) ([]Target, error) {
	var targets []Target
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&targets).Error
	return targets, err
}
