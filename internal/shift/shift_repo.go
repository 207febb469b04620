package shift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"geoshift/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrLockOutsideTx means an advisory lock was requested without an
// open transaction; a xact lock taken there would release immediately.
var ErrLockOutsideTx = errors.New("shift: advisory lock requires an open transaction")

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// AcquireUserLock serializes clock-in/clock-out for one user. The
	// lock is a pg advisory transaction lock, released on commit or
	// rollback; it must be taken before the open-shift lookup.
	AcquireUserLock(ctx context.Context, userID string) error
	// AcquireShiftLock serializes resolutions of one shift.
	AcquireShiftLock(ctx context.Context, shiftID string) error
	Create(ctx context.Context, s *Shift) error
	Update(ctx context.Context, s *Shift) error
	// ListOpenByUser returns up to two open shifts, newest clock-in
	// first. The invariant allows at most one; callers treat a second
	// row as a data-integrity failure, never silently pick one.
	ListOpenByUser(ctx context.Context, userID string) ([]Shift, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Shift, error)
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]Shift, error)
	ListByUserAndOrganization(ctx context.Context, organizationID, userID string, limit, offset int) ([]Shift, error)
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
	CountByUserAndOrganization(ctx context.Context, organizationID, userID string) (int64, error)
	ListOpenBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]Shift, error)
	// ListOpenOrganizations feeds the stale sweep: every organization
	// that currently has at least one open shift.
	ListOpenOrganizations(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction. Locks, writes
// and the open-shift lookup all run through the tx so the advisory
// lock actually covers them; gorm stays in use on the non-tx paths.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) AcquireUserLock(ctx context.Context, userID string) error {
	return r.advisoryLock(ctx, "shift_user", userID)
}

func (r *repository) AcquireShiftLock(ctx context.Context, shiftID string) error {
	return r.advisoryLock(ctx, "shift_resolve", shiftID)
}

func (r *repository) advisoryLock(ctx context.Context, namespace, key string) error {
	if r.tx == nil {
		// An advisory xact lock outside a transaction releases at the
		// end of the statement, which protects nothing.
		return ErrLockOutsideTx
	}
	_, err := r.tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1 || ':' || $2, 0))`,
		namespace, key,
	)
	return err
}

const shiftColumns = `
	id::text, user_id::text, organization_id::text, location_id::text,
	status, shift_date, clock_in_at, clock_out_at,
	clock_in_verified, clock_in_distance_m, clock_in_accuracy_m, clock_in_flags, clock_in_sample_at,
	clock_out_verified, clock_out_distance_m, clock_out_accuracy_m, clock_out_flags, clock_out_sample_at,
	duration_minutes, break_minutes, net_duration_minutes, crossed_midnight,
	is_revised, resolution_note, notes, created_at, updated_at`

func (r *repository) Create(ctx context.Context, s *Shift) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(s).Error
	}

	query := `
INSERT INTO shifts (
	id, user_id, organization_id, location_id, status, shift_date, clock_in_at,
	clock_in_verified, clock_in_distance_m, clock_in_accuracy_m, clock_in_flags, clock_in_sample_at,
	crossed_midnight, is_revised, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
`
	var locationID *string
	if s.LocationID != nil {
		v := s.LocationID.String()
		locationID = &v
	}
	_, err := r.tx.ExecContext(
		ctx, query,
		s.ID.String(), s.UserID.String(), s.OrganizationID.String(), locationID,
		s.Status, s.ShiftDate, s.ClockInAt,
		s.ClockInVerified, s.ClockInDistanceMeters, s.ClockInAccuracyMeters,
		s.ClockInFlags, s.ClockInSampleAt,
		s.CrossedMidnight, s.IsRevised,
	)
	return err
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Save(s).Error
	}

	query := `
UPDATE shifts
SET
	status = $2,
	clock_out_at = $3,
	clock_out_verified = $4,
	clock_out_distance_m = $5,
	clock_out_accuracy_m = $6,
	clock_out_flags = $7,
	clock_out_sample_at = $8,
	duration_minutes = $9,
	break_minutes = $10,
	net_duration_minutes = $11,
	crossed_midnight = $12,
	is_revised = $13,
	resolution_note = $14,
	notes = $15,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.tx.ExecContext(
		ctx, query,
		s.ID.String(),
		s.Status, s.ClockOutAt,
		s.ClockOutVerified, s.ClockOutDistanceMeters, s.ClockOutAccuracyMeters,
		s.ClockOutFlags, s.ClockOutSampleAt,
		s.DurationMinutes, s.BreakMinutes, s.NetDurationMinutes, s.CrossedMidnight,
		s.IsRevised, s.ResolutionNote, s.Notes,
	)
	return err
}

func (r *repository) ListOpenByUser(ctx context.Context, userID string) ([]Shift, error) {
	if r.tx == nil {
		var rows []Shift
		err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Where("status = ?", StatusOpen).
			Order("clock_in_at DESC").
			Limit(2).
			Find(&rows).Error
		return rows, err
	}

	query := `SELECT ` + shiftColumns + `
FROM shifts
WHERE user_id = $1 AND status = $2
ORDER BY clock_in_at DESC
LIMIT 2
`
	rows, err := r.tx.QueryContext(ctx, query, userID, StatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Shift, error) {
	if r.tx == nil {
		var s Shift
		err := r.db.WithContext(ctx).
			Scopes(tenant.Scope(organizationID)).
			Where("id = ?", id).
			First(&s).Error
		if err != nil {
			return nil, err
		}
		return &s, nil
	}

	query := `SELECT ` + shiftColumns + `
FROM shifts
WHERE organization_id = $1 AND id = $2
`
	rows, err := r.tx.QueryContext(ctx, query, organizationID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found[0], nil
}

func (r *repository) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("clock_in_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByUserAndOrganization(ctx context.Context, organizationID, userID string, limit, offset int) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("user_id = ?", userID).
		Order("clock_in_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Scopes(tenant.Scope(organizationID)).
		Count(&total).Error
	return total, err
}

func (r *repository) CountByUserAndOrganization(ctx context.Context, organizationID, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Scopes(tenant.Scope(organizationID)).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

func (r *repository) ListOpenBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusOpen).
		Where("clock_in_at < ?", cutoff).
		Order("clock_in_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListOpenOrganizations(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("status = ?", StatusOpen).
		Distinct("organization_id").
		Pluck("organization_id", &ids).Error
	return ids, err
}

func scanShifts(rows *sql.Rows) ([]Shift, error) {
	var out []Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanShift(rows *sql.Rows) (Shift, error) {
	var (
		s                       Shift
		id, userID, orgID       string
		locationID              *string
		clockInFlags            sql.NullString
		clockOutFlags           sql.NullString
		clockInSampleAt         sql.NullTime
		clockInDist, clockInAcc sql.NullFloat64
		clockOutDist            sql.NullFloat64
		clockOutAcc             sql.NullFloat64
	)
	err := rows.Scan(
		&id, &userID, &orgID, &locationID,
		&s.Status, &s.ShiftDate, &s.ClockInAt, &s.ClockOutAt,
		&s.ClockInVerified, &clockInDist, &clockInAcc, &clockInFlags, &clockInSampleAt,
		&s.ClockOutVerified, &clockOutDist, &clockOutAcc, &clockOutFlags, &s.ClockOutSampleAt,
		&s.DurationMinutes, &s.BreakMinutes, &s.NetDurationMinutes, &s.CrossedMidnight,
		&s.IsRevised, &s.ResolutionNote, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Shift{}, err
	}

	if s.ID, err = uuid.Parse(id); err != nil {
		return Shift{}, err
	}
	if s.UserID, err = uuid.Parse(userID); err != nil {
		return Shift{}, err
	}
	if s.OrganizationID, err = uuid.Parse(orgID); err != nil {
		return Shift{}, err
	}
	if locationID != nil {
		loc, err := uuid.Parse(*locationID)
		if err != nil {
			return Shift{}, err
		}
		s.LocationID = &loc
	}
	s.ClockInFlags = clockInFlags.String
	s.ClockOutFlags = clockOutFlags.String
	s.ClockInSampleAt = clockInSampleAt.Time
	s.ClockInDistanceMeters = clockInDist.Float64
	s.ClockInAccuracyMeters = clockInAcc.Float64
	s.ClockOutDistanceMeters = clockOutDist.Float64
	s.ClockOutAccuracyMeters = clockOutAcc.Float64
	return s, nil
}
