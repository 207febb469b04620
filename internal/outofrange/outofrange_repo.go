package outofrange

import (
	"context"
	"database/sql"

	"geoshift/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=outofrange_repo.go -destination=mock/outofrange_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Request, error)
	ListPendingByOrganization(ctx context.Context, organizationID string) ([]Request, error)
	ListByUserAndOrganization(ctx context.Context, organizationID, userID string) ([]Request, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListPendingByOrganization(ctx context.Context, organizationID string) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListByUserAndOrganization(ctx context.Context, organizationID, userID string) ([]Request, error) {
	var reqs []Request
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}
