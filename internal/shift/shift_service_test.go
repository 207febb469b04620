package shift

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"geoshift/internal/geofence"
	"geoshift/internal/messaging/kafka"
	"geoshift/internal/orgpolicy"
	shifterrors "geoshift/internal/shift/errors"
	"geoshift/internal/worktime"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	acquireUserLockFn   func(ctx context.Context, userID string) error
	acquireShiftLockFn  func(ctx context.Context, shiftID string) error
	createFn            func(ctx context.Context, s *Shift) error
	updateFn            func(ctx context.Context, s *Shift) error
	listOpenByUserFn    func(ctx context.Context, userID string) ([]Shift, error)
	findByIDAndOrgFn    func(ctx context.Context, organizationID, id string) (*Shift, error)
	listByOrgFn         func(ctx context.Context, organizationID string, limit, offset int) ([]Shift, error)
	listByUserAndOrgFn  func(ctx context.Context, organizationID, userID string, limit, offset int) ([]Shift, error)
	countByOrgFn        func(ctx context.Context, organizationID string) (int64, error)
	countByUserAndOrgFn func(ctx context.Context, organizationID, userID string) (int64, error)
	listOpenBeforeFn    func(ctx context.Context, organizationID string, cutoff time.Time) ([]Shift, error)
	listOpenOrgsFn      func(ctx context.Context) ([]string, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) AcquireUserLock(ctx context.Context, userID string) error {
	if f.acquireUserLockFn != nil {
		return f.acquireUserLockFn(ctx, userID)
	}
	return nil
}
func (f *fakeRepo) AcquireShiftLock(ctx context.Context, shiftID string) error {
	if f.acquireShiftLockFn != nil {
		return f.acquireShiftLockFn(ctx, shiftID)
	}
	return nil
}
func (f *fakeRepo) Create(ctx context.Context, s *Shift) error { return f.createFn(ctx, s) }
func (f *fakeRepo) Update(ctx context.Context, s *Shift) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) ListOpenByUser(ctx context.Context, userID string) ([]Shift, error) {
	return f.listOpenByUserFn(ctx, userID)
}
func (f *fakeRepo) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Shift, error) {
	return f.findByIDAndOrgFn(ctx, organizationID, id)
}
func (f *fakeRepo) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]Shift, error) {
	return f.listByOrgFn(ctx, organizationID, limit, offset)
}
func (f *fakeRepo) ListByUserAndOrganization(ctx context.Context, organizationID, userID string, limit, offset int) ([]Shift, error) {
	return f.listByUserAndOrgFn(ctx, organizationID, userID, limit, offset)
}
func (f *fakeRepo) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	if f.countByOrgFn != nil {
		return f.countByOrgFn(ctx, organizationID)
	}
	return 0, nil
}
func (f *fakeRepo) CountByUserAndOrganization(ctx context.Context, organizationID, userID string) (int64, error) {
	if f.countByUserAndOrgFn != nil {
		return f.countByUserAndOrgFn(ctx, organizationID, userID)
	}
	return 0, nil
}
func (f *fakeRepo) ListOpenBefore(ctx context.Context, organizationID string, cutoff time.Time) ([]Shift, error) {
	return f.listOpenBeforeFn(ctx, organizationID, cutoff)
}
func (f *fakeRepo) ListOpenOrganizations(ctx context.Context) ([]string, error) {
	return f.listOpenOrgsFn(ctx)
}

type fakeTargets struct {
	targets []geofence.Target
	err     error
}

func (f *fakeTargets) ActiveTargets(ctx context.Context, organizationID string) ([]geofence.Target, error) {
	return f.targets, f.err
}

type fakePolicies struct {
	resolved orgpolicy.Resolved
	err      error
}

func (f *fakePolicies) Resolve(ctx context.Context, organizationID string) (orgpolicy.Resolved, error) {
	return f.resolved, f.err
}

type fakeOverrides struct {
	approvedFn func(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error)
}

func (f *fakeOverrides) IsApproved(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error) {
	return f.approvedFn(ctx, requestID, organizationID, userID, requestType)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error            { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error  { return nil }

const (
	officeLat = -6.2000000
	officeLon = 106.8166667
)

func testPolicies() *fakePolicies {
	return &fakePolicies{
		resolved: orgpolicy.Resolved{
			Location:       time.UTC,
			StaleThreshold: 16 * time.Hour,
			BreakPolicy:    worktime.BreakPolicy{ThresholdHours: 6, BreakMinutes: 30},
			GeofencePolicy: geofence.Policy{
				MaxAcceptableAccuracyMeters: 100,
				RequireRecentTimestamp:      true,
				MaxTimestampAge:             2 * time.Minute,
			},
			ReasonMinLength: 10,
			Attribution:     worktime.AttributeToStartDate,
		},
	}
}

func testTargets() *fakeTargets {
	return &fakeTargets{
		targets: []geofence.Target{
			{
				ID:           uuid.New(),
				Name:         "HQ",
				Latitude:     officeLat,
				Longitude:    officeLon,
				RadiusMeters: 150,
			},
		},
	}
}

func f64(v float64) *float64 {
	return &v
}

func inRangeSample() LocationSampleRequest {
	return LocationSampleRequest{
		Latitude:        f64(officeLat),
		Longitude:       f64(officeLon),
		AccuracyMeters:  10,
		SampleTimestamp: time.Now().UTC(),
	}
}

func TestService_ClockIn_Success(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	organizationID := uuid.New().String()
	userID := uuid.New().String()
	ctx := context.Background()

	var saved *Shift
	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, userID string) ([]Shift, error) { return nil, nil },
		createFn:         func(ctx context.Context, s *Shift) error { saved = s; return nil },
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockIn(ctx, organizationID, userID, ClockInRequest{Sample: inRangeSample()})
	assert.NoError(t, err)
	assert.Equal(t, StatusOpen, resp.Status)
	assert.True(t, resp.ClockInVerification.Verified)
	assert.Empty(t, resp.ClockInVerification.Flags)
	assert.NotNil(t, resp.LocationID)
	assert.NotNil(t, saved)
	assert.True(t, saved.ClockInVerified)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestService_ClockIn_AlreadyClockedIn(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	organizationID := uuid.New().String()
	userID := uuid.New().String()

	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, userID string) ([]Shift, error) {
			return []Shift{{ID: uuid.New(), Status: StatusOpen}}, nil
		},
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectRollback()

	_, err := svc.ClockIn(context.Background(), organizationID, userID, ClockInRequest{Sample: inRangeSample()})
	assert.ErrorIs(t, err, shifterrors.ErrAlreadyClockedIn)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestService_ClockIn_TwoOpenShiftsIsIntegrityViolation(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, userID string) ([]Shift, error) {
			return []Shift{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectRollback()

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: inRangeSample()})
	assert.ErrorIs(t, err, shifterrors.ErrIntegrityViolation)
}

func TestService_ClockIn_AccuracyTooLowIsRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, testTargets(), testPolicies(), nil)

	sample := inRangeSample()
	sample.AccuracyMeters = 500

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: sample})
	assert.ErrorIs(t, err, shifterrors.ErrLocationRejected)
}

func TestService_ClockIn_StaleSampleIsRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, testTargets(), testPolicies(), nil)

	sample := inRangeSample()
	sample.SampleTimestamp = time.Now().UTC().Add(-10 * time.Minute)

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: sample})
	assert.ErrorIs(t, err, shifterrors.ErrLocationRejected)
}

func TestService_ClockIn_OutOfRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, testTargets(), testPolicies(), nil)

	sample := inRangeSample()
	sample.Latitude = f64(officeLat + 0.05) // roughly 5.5 km north

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: sample})
	assert.ErrorIs(t, err, shifterrors.ErrOutOfRange)
}

func TestService_ClockIn_OutOfRangeWithApprovedOverride(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, userID string) ([]Shift, error) { return nil, nil },
		createFn:         func(ctx context.Context, s *Shift) error { return nil },
	}
	overrides := &fakeOverrides{
		approvedFn: func(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error) {
			assert.Equal(t, OverrideTypeClockIn, requestType)
			return true, nil
		},
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), overrides)

	sample := inRangeSample()
	sample.Latitude = f64(officeLat + 0.05)
	requestID := uuid.New().String()

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{
		Sample:            sample,
		OverrideRequestID: &requestID,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusOpen, resp.Status)
	assert.False(t, resp.ClockInVerification.Verified)
	assert.Contains(t, resp.ClockInVerification.Flags, string(geofence.FlagOutOfRange))
}

func TestService_ClockIn_OutOfRangeWithUnapprovedOverride(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	overrides := &fakeOverrides{
		approvedFn: func(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(db, &fakeRepo{}, testTargets(), testPolicies(), overrides)

	sample := inRangeSample()
	sample.Latitude = f64(officeLat + 0.05)
	requestID := uuid.New().String()

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{
		Sample:            sample,
		OverrideRequestID: &requestID,
	})
	assert.ErrorIs(t, err, shifterrors.ErrOverrideNotApproved)
}

func TestService_ClockIn_NoTargetsProceedsUnverified(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	var saved *Shift
	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, userID string) ([]Shift, error) { return nil, nil },
		createFn:         func(ctx context.Context, s *Shift) error { saved = s; return nil },
	}

	svc := NewService(db, repo, &fakeTargets{}, testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: inRangeSample()})
	assert.NoError(t, err)
	assert.False(t, resp.ClockInVerification.Verified)
	assert.Nil(t, resp.LocationID)
	assert.Nil(t, saved.LocationID)
}

func TestService_ClockOut_Success(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	organizationID := uuid.New()
	userID := uuid.New()
	clockIn := time.Now().UTC().Add(-8*time.Hour - 30*time.Minute)

	var updated *Shift
	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, uid string) ([]Shift, error) {
			return []Shift{{
				ID:             uuid.New(),
				UserID:         userID,
				OrganizationID: organizationID,
				Status:         StatusOpen,
				ShiftDate:      time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, time.UTC),
				ClockInAt:      clockIn,
			}}, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error { updated = s; return nil },
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, testTargets(), testPolicies(), nil, outbox)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockOut(context.Background(), organizationID.String(), userID.String(), ClockOutRequest{Sample: inRangeSample()})
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, resp.Status)
	assert.NotNil(t, resp.Duration)
	assert.Equal(t, 510, resp.Duration.TotalMinutes)
	assert.Equal(t, 30, resp.Duration.BreakMinutes)
	assert.Equal(t, 480, resp.Duration.NetMinutes)
	assert.Equal(t, "8h 30m", resp.Duration.Formatted)
	assert.False(t, resp.Duration.CrossedMidnight)

	assert.NotNil(t, updated)
	assert.Equal(t, StatusClosed, updated.Status)

	if assert.Len(t, outbox.created, 1) {
		assert.Equal(t, "shift.closed", outbox.created[0].EventType)
		assert.Equal(t, "workforce.shift.lifecycle.v1", outbox.created[0].Topic)
	}
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestService_ClockOut_ShortShiftHasNoBreak(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	clockIn := time.Now().UTC().Add(-5 * time.Hour)
	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, uid string) ([]Shift, error) {
			return []Shift{{
				ID:             uuid.New(),
				UserID:         uuid.New(),
				OrganizationID: uuid.New(),
				Status:         StatusOpen,
				ClockInAt:      clockIn,
			}}, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error { return nil },
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockOut(context.Background(), uuid.New().String(), uuid.New().String(), ClockOutRequest{Sample: inRangeSample()})
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Duration.BreakMinutes)
	assert.Equal(t, resp.Duration.TotalMinutes, resp.Duration.NetMinutes)
}

func TestService_ClockOut_NoOpenShift(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, uid string) ([]Shift, error) { return nil, nil },
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectRollback()

	_, err := svc.ClockOut(context.Background(), uuid.New().String(), uuid.New().String(), ClockOutRequest{Sample: inRangeSample()})
	assert.ErrorIs(t, err, shifterrors.ErrNoOpenShift)
}

func TestService_ClockOut_OutOfRangeIsRecordedNotRefused(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	clockIn := time.Now().UTC().Add(-7 * time.Hour)
	var updated *Shift
	repo := &fakeRepo{
		listOpenByUserFn: func(ctx context.Context, uid string) ([]Shift, error) {
			return []Shift{{
				ID:             uuid.New(),
				UserID:         uuid.New(),
				OrganizationID: uuid.New(),
				Status:         StatusOpen,
				ClockInAt:      clockIn,
			}}, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error { updated = s; return nil },
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	sample := inRangeSample()
	sample.Latitude = f64(officeLat + 0.05)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.ClockOut(context.Background(), uuid.New().String(), uuid.New().String(), ClockOutRequest{Sample: sample})
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, resp.Status)
	assert.Contains(t, updated.ClockOutFlags, string(geofence.FlagOutOfRange))
	assert.False(t, updated.ClockOutVerified)
}

func TestService_Resolve_Forgot(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	organizationID := uuid.New()
	shiftID := uuid.New()
	actorID := uuid.New().String()
	clockIn := time.Now().UTC().Add(-20 * time.Hour)

	var updated *Shift
	repo := &fakeRepo{
		findByIDAndOrgFn: func(ctx context.Context, orgID, id string) (*Shift, error) {
			return &Shift{
				ID:             shiftID,
				UserID:         uuid.New(),
				OrganizationID: organizationID,
				Status:         StatusOpen,
				ClockInAt:      clockIn,
			}, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error { updated = s; return nil },
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, testTargets(), testPolicies(), nil, outbox)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.Resolve(context.Background(), organizationID.String(), actorID, shiftID.String(), ResolveRequest{
		Resolution: ResolutionForgot,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusRevised, resp.Status)
	assert.True(t, resp.IsRevised)
	assert.Equal(t, 0, resp.Duration.TotalMinutes)
	assert.Equal(t, 0, resp.Duration.NetMinutes)

	assert.NotNil(t, updated.ResolutionNote)
	assert.Contains(t, *updated.ResolutionNote, ResolutionForgot)
	assert.Contains(t, *updated.ResolutionNote, actorID)

	if assert.Len(t, outbox.created, 1) {
		assert.Equal(t, "shift.revised", outbox.created[0].EventType)
	}
}

func TestService_Resolve_ActualHours(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	shiftID := uuid.New()
	clockIn := time.Now().UTC().Add(-20 * time.Hour)
	actual := clockIn.Add(8 * time.Hour)

	repo := &fakeRepo{
		findByIDAndOrgFn: func(ctx context.Context, orgID, id string) (*Shift, error) {
			return &Shift{
				ID:             shiftID,
				UserID:         uuid.New(),
				OrganizationID: uuid.New(),
				Status:         StatusOpen,
				ClockInAt:      clockIn,
			}, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error { return nil },
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	resp, err := svc.Resolve(context.Background(), uuid.New().String(), uuid.New().String(), shiftID.String(), ResolveRequest{
		Resolution:     ResolutionActualHours,
		ActualClockOut: &actual,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusRevised, resp.Status)
	// Manager-attested hours land as net with no auto-break.
	assert.Equal(t, 480, resp.Duration.TotalMinutes)
	assert.Equal(t, 0, resp.Duration.BreakMinutes)
	assert.Equal(t, 480, resp.Duration.NetMinutes)
}

func TestService_Resolve_ActualHoursValidation(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	shiftID := uuid.New()
	clockIn := time.Now().UTC().Add(-20 * time.Hour)

	repo := &fakeRepo{
		findByIDAndOrgFn: func(ctx context.Context, orgID, id string) (*Shift, error) {
			return &Shift{ID: shiftID, UserID: uuid.New(), OrganizationID: uuid.New(), Status: StatusOpen, ClockInAt: clockIn}, nil
		},
	}
	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	t.Run("missing actual clock out", func(t *testing.T) {
		dbmock.ExpectBegin()
		dbmock.ExpectRollback()
		_, err := svc.Resolve(context.Background(), uuid.New().String(), uuid.New().String(), shiftID.String(), ResolveRequest{
			Resolution: ResolutionActualHours,
		})
		assert.ErrorIs(t, err, shifterrors.ErrActualClockOutRequired)
	})

	t.Run("actual clock out before clock in", func(t *testing.T) {
		before := clockIn.Add(-time.Hour)
		dbmock.ExpectBegin()
		dbmock.ExpectRollback()
		_, err := svc.Resolve(context.Background(), uuid.New().String(), uuid.New().String(), shiftID.String(), ResolveRequest{
			Resolution:     ResolutionActualHours,
			ActualClockOut: &before,
		})
		assert.ErrorIs(t, err, shifterrors.ErrInvalidInterval)
	})

	t.Run("unknown resolution", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), uuid.New().String(), uuid.New().String(), shiftID.String(), ResolveRequest{
			Resolution: "guess",
		})
		assert.ErrorIs(t, err, shifterrors.ErrInvalidResolution)
	})
}

func TestService_Resolve_ClosedShiftIsTerminal(t *testing.T) {
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	shiftID := uuid.New()
	repo := &fakeRepo{
		findByIDAndOrgFn: func(ctx context.Context, orgID, id string) (*Shift, error) {
			return &Shift{ID: shiftID, Status: StatusClosed}, nil
		},
	}
	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	dbmock.ExpectBegin()
	dbmock.ExpectRollback()

	_, err := svc.Resolve(context.Background(), uuid.New().String(), uuid.New().String(), shiftID.String(), ResolveRequest{
		Resolution: ResolutionForgot,
	})
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotOpen)
}

func TestService_ListStale(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	organizationID := uuid.New()
	var gotCutoff time.Time
	repo := &fakeRepo{
		listOpenBeforeFn: func(ctx context.Context, orgID string, cutoff time.Time) ([]Shift, error) {
			gotCutoff = cutoff
			return []Shift{{
				ID:             uuid.New(),
				UserID:         uuid.New(),
				OrganizationID: organizationID,
				Status:         StatusOpen,
				ClockInAt:      time.Now().UTC().Add(-20 * time.Hour),
			}}, nil
		},
	}

	svc := NewService(db, repo, testTargets(), testPolicies(), nil)

	resp, err := svc.ListStale(context.Background(), organizationID.String())
	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		// Stale is a read-time classification; the row itself stays open.
		assert.Equal(t, StatusStale, resp[0].Status)
	}
	assert.WithinDuration(t, time.Now().UTC().Add(-16*time.Hour), gotCutoff, 5*time.Second)
}

func TestService_ClockIn_InvalidIDs(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, testTargets(), testPolicies(), nil)

	_, err := svc.ClockIn(context.Background(), "not-a-uuid", uuid.New().String(), ClockInRequest{Sample: inRangeSample()})
	assert.ErrorIs(t, err, shifterrors.ErrInvalidOrganizationID)

	_, err = svc.ClockIn(context.Background(), uuid.New().String(), "not-a-uuid", ClockInRequest{Sample: inRangeSample()})
	assert.ErrorIs(t, err, shifterrors.ErrInvalidUserID)
}

func TestService_ClockIn_TargetLookupFailure(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	targets := &fakeTargets{err: errors.New("redis down")}
	svc := NewService(db, &fakeRepo{}, targets, testPolicies(), nil)

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String(), ClockInRequest{Sample: inRangeSample()})
	assert.Error(t, err)
}
