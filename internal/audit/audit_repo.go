package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *ShiftAuditEvent) error
	ListByShift(ctx context.Context, shiftID string) ([]ShiftAuditEvent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *ShiftAuditEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListByShift(ctx context.Context, shiftID string) ([]ShiftAuditEvent, error) {
	var rows []ShiftAuditEvent
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}
