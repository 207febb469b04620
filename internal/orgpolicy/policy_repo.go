package orgpolicy

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	FindByOrganization(ctx context.Context, organizationID string) (*Override, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByOrganization returns nil without error when the organization
// has no override row.
func (r *repository) FindByOrganization(ctx context.Context, organizationID string) (*Override, error) {
	var row Override
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
