package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"geoshift/internal/events"
	"geoshift/internal/geofence"
	"geoshift/internal/messaging/kafka"
	"geoshift/internal/orgpolicy"
	"geoshift/internal/shared/contextutil"
	shifterrors "geoshift/internal/shift/errors"
	"geoshift/internal/worktime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	OverrideTypeClockIn  = "clock_in"
	OverrideTypeClockOut = "clock_out"
)

// OverrideChecker reports whether an approved out-of-range request
// authorizes the given clock event. Implemented by the outofrange
// service; declared locally so the ledger does not depend on it.
type OverrideChecker interface {
	IsApproved(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error)
}

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, organizationID, userID string, req ClockInRequest) (ShiftResponse, error)
	ClockOut(ctx context.Context, organizationID, userID string, req ClockOutRequest) (ShiftResponse, error)
	GetAll(ctx context.Context, organizationID, actorID string, canReadAll bool, page, pageSize int) ([]ShiftResponse, int64, error)
	ListStale(ctx context.Context, organizationID string) ([]ShiftResponse, error)
	Resolve(ctx context.Context, organizationID, actorID, shiftID string, req ResolveRequest) (ShiftResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	targets   geofence.TargetService
	policies  orgpolicy.Resolver
	verifier  *geofence.Verifier
	overrides OverrideChecker
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	targets geofence.TargetService,
	policies orgpolicy.Resolver,
	overrides OverrideChecker,
) Service {
	return NewServiceWithOutbox(db, repo, targets, policies, overrides, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	targets geofence.TargetService,
	policies orgpolicy.Resolver,
	overrides OverrideChecker,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		targets:   targets,
		policies:  policies,
		verifier:  geofence.NewVerifier(),
		overrides: overrides,
		outbox:    outboxRepo,
		logger:    zap.L().Named("shift.service"),
		now:       time.Now,
	}
}

func (s *service) ClockIn(ctx context.Context, organizationID, userID string, req ClockInRequest) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock in requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("user_id", userID),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidOrganizationID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidUserID
	}

	policy, err := s.policies.Resolve(ctx, organizationID)
	if err != nil {
		s.logger.Error("clock in resolve policy failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	verification, locationID, err := s.verifyClockEvent(ctx, organizationID, req.Sample, policy)
	if err != nil {
		return ShiftResponse{}, err
	}

	if verification.HasBlockingFlag() {
		s.logger.Warn("clock in location rejected",
			zap.String("user_id", userID),
			zap.Float64("distance_m", verification.DistanceMeters),
			zap.Any("flags", verification.Flags),
		)
		return ShiftResponse{}, shifterrors.ErrLocationRejected
	}
	if verification.OutOfRangeOnly() {
		allowed, err := s.overrideAllows(ctx, req.OverrideRequestID, organizationID, userID, OverrideTypeClockIn)
		if err != nil {
			return ShiftResponse{}, err
		}
		if !allowed {
			s.logger.Warn("clock in out of range",
				zap.String("user_id", userID),
				zap.Float64("distance_m", verification.DistanceMeters),
			)
			return ShiftResponse{}, shifterrors.ErrOutOfRange
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.AcquireUserLock(ctx, userID); err != nil {
		s.logger.Error("clock in acquire user lock failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	open, err := qtx.ListOpenByUser(ctx, userID)
	if err != nil {
		return ShiftResponse{}, err
	}
	if len(open) > 1 {
		s.logger.Error("multiple open shifts found for user",
			zap.String("user_id", userID),
			zap.Int("count", len(open)),
		)
		return ShiftResponse{}, shifterrors.ErrIntegrityViolation
	}
	if len(open) == 1 {
		return ShiftResponse{}, shifterrors.ErrAlreadyClockedIn
	}

	now := s.now().UTC()
	localNow := now.In(policy.Location)
	y, m, d := localNow.Date()

	row := &Shift{
		ID:             uuid.New(),
		UserID:         userUUID,
		OrganizationID: orgUUID,
		LocationID:     locationID,
		Status:         StatusOpen,
		ShiftDate:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		ClockInAt:      now,
	}
	row.applyClockInVerification(verification)

	if err := qtx.Create(ctx, row); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("shift_id", row.ID.String()),
		zap.String("user_id", userID),
		zap.Bool("verified", verification.Verified),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, organizationID, userID string, req ClockOutRequest) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock out requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("user_id", userID),
	)

	if _, err := uuid.Parse(organizationID); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidUserID
	}

	policy, err := s.policies.Resolve(ctx, organizationID)
	if err != nil {
		s.logger.Error("clock out resolve policy failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	verification, _, err := s.verifyClockEvent(ctx, organizationID, req.Sample, policy)
	if err != nil {
		return ShiftResponse{}, err
	}
	if verification.HasBlockingFlag() {
		s.logger.Warn("clock out location rejected",
			zap.String("user_id", userID),
			zap.Any("flags", verification.Flags),
		)
		return ShiftResponse{}, shifterrors.ErrLocationRejected
	}
	// An out-of-range clock-out is recorded, not refused: forgetting to
	// return to site is routine, and the flags stay on the row for
	// manager review. An attached approved request is acknowledged for
	// the audit trail but is never required here.
	if verification.Has(geofence.FlagOutOfRange) {
		if _, overrideErr := s.overrideAllows(ctx, req.OverrideRequestID, organizationID, userID, OverrideTypeClockOut); overrideErr != nil {
			s.logger.Warn("clock out override request not usable",
				zap.String("user_id", userID),
				zap.Error(overrideErr),
			)
		}
		s.logger.Warn("clock out out of range, recording",
			zap.String("user_id", userID),
			zap.Float64("distance_m", verification.DistanceMeters),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.AcquireUserLock(ctx, userID); err != nil {
		s.logger.Error("clock out acquire user lock failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	open, err := qtx.ListOpenByUser(ctx, userID)
	if err != nil {
		return ShiftResponse{}, err
	}
	if len(open) > 1 {
		s.logger.Error("multiple open shifts found for user",
			zap.String("user_id", userID),
			zap.Int("count", len(open)),
		)
		return ShiftResponse{}, shifterrors.ErrIntegrityViolation
	}
	if len(open) == 0 {
		return ShiftResponse{}, shifterrors.ErrNoOpenShift
	}

	row := open[0]
	now := s.now().UTC()

	breakdown, err := worktime.Compute(row.ClockInAt, now, policy.Location)
	if err != nil {
		if errors.Is(err, worktime.ErrInvalidInterval) {
			return ShiftResponse{}, shifterrors.ErrInvalidInterval
		}
		return ShiftResponse{}, err
	}

	breakMinutes := policy.BreakPolicy.AutoBreakMinutes(breakdown.TotalMinutes)
	netMinutes := worktime.NetMinutes(breakdown.TotalMinutes, breakMinutes)

	row.Status = StatusClosed
	row.ClockOutAt = &now
	row.DurationMinutes = &breakdown.TotalMinutes
	row.BreakMinutes = &breakMinutes
	row.NetDurationMinutes = &netMinutes
	row.CrossedMidnight = breakdown.CrossedMidnight
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	row.applyClockOutVerification(verification)

	if err := qtx.Update(ctx, &row); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueClosedEvent(ctx, tx, &row, rid); err != nil {
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("request_id", rid),
		zap.String("shift_id", row.ID.String()),
		zap.String("user_id", userID),
		zap.Int("total_minutes", breakdown.TotalMinutes),
		zap.Int("net_minutes", netMinutes),
		zap.Bool("crossed_midnight", breakdown.CrossedMidnight),
	)
	return mapToResponse(row), nil
}

func (s *service) GetAll(ctx context.Context, organizationID, actorID string, canReadAll bool, page, pageSize int) ([]ShiftResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var (
		rows  []Shift
		total int64
		err   error
	)
	if canReadAll {
		if total, err = s.repo.CountByOrganization(ctx, organizationID); err != nil {
			return nil, 0, err
		}
		rows, err = s.repo.ListByOrganization(ctx, organizationID, pageSize, offset)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, 0, shifterrors.ErrInvalidUserID
		}
		if total, err = s.repo.CountByUserAndOrganization(ctx, organizationID, actorID); err != nil {
			return nil, 0, err
		}
		rows, err = s.repo.ListByUserAndOrganization(ctx, organizationID, actorID, pageSize, offset)
	}
	if err != nil {
		return nil, 0, err
	}

	res := make([]ShiftResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

// ListStale applies the stale predicate at read time; nothing is
// mutated until a manager resolves.
func (s *service) ListStale(ctx context.Context, organizationID string) ([]ShiftResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, shifterrors.ErrInvalidOrganizationID
	}

	policy, err := s.policies.Resolve(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().Add(-policy.StaleThreshold)
	rows, err := s.repo.ListOpenBefore(ctx, organizationID, cutoff)
	if err != nil {
		return nil, err
	}

	res := make([]ShiftResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
		res[i].Status = StatusStale
	}
	return res, nil
}

func (s *service) Resolve(ctx context.Context, organizationID, actorID, shiftID string, req ResolveRequest) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("resolve shift requested",
		zap.String("request_id", rid),
		zap.String("shift_id", shiftID),
		zap.String("actor_id", actorID),
		zap.String("resolution", req.Resolution),
	)

	if _, err := uuid.Parse(organizationID); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(shiftID); err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}
	if req.Resolution != ResolutionForgot && req.Resolution != ResolutionActualHours {
		return ShiftResponse{}, shifterrors.ErrInvalidResolution
	}

	policy, err := s.policies.Resolve(ctx, organizationID)
	if err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.AcquireShiftLock(ctx, shiftID); err != nil {
		s.logger.Error("resolve shift acquire lock failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	row, err := qtx.FindByIDAndOrganization(ctx, organizationID, shiftID)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if row.Status != StatusOpen {
		s.logger.Warn("resolve shift not open",
			zap.String("shift_id", shiftID),
			zap.String("status", row.Status),
		)
		return ShiftResponse{}, shifterrors.ErrShiftNotOpen
	}

	zero := 0
	switch req.Resolution {
	case ResolutionForgot:
		// The employee never worked past clock-in as far as anyone can
		// attest: zero-length shift, no break.
		clockOut := row.ClockInAt
		row.ClockOutAt = &clockOut
		row.DurationMinutes = &zero
		row.BreakMinutes = &zero
		row.NetDurationMinutes = &zero
		row.CrossedMidnight = false
	case ResolutionActualHours:
		if req.ActualClockOut == nil {
			return ShiftResponse{}, shifterrors.ErrActualClockOutRequired
		}
		actual := req.ActualClockOut.UTC()
		if !actual.After(row.ClockInAt) {
			return ShiftResponse{}, shifterrors.ErrInvalidInterval
		}
		minutes := int(math.Round(actual.Sub(row.ClockInAt).Minutes()))
		breakdown, err := worktime.Compute(row.ClockInAt, actual, policy.Location)
		if err == nil {
			row.CrossedMidnight = breakdown.CrossedMidnight
		}
		// Manager-attested hours are taken as net; the automatic break
		// deduction does not apply to manual resolutions.
		row.ClockOutAt = &actual
		row.DurationMinutes = &minutes
		row.BreakMinutes = &zero
		row.NetDurationMinutes = &minutes
	}

	row.Status = StatusRevised
	row.IsRevised = true

	note := fmt.Sprintf("resolved as %s by %s", req.Resolution, actorID)
	if req.Note != nil && *req.Note != "" {
		note = note + ": " + *req.Note
	}
	row.ResolutionNote = &note

	if err := qtx.Update(ctx, row); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueRevisedEvent(ctx, tx, row, req.Resolution, actorID, rid); err != nil {
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("resolve shift success",
		zap.String("request_id", rid),
		zap.String("shift_id", shiftID),
		zap.String("resolution", req.Resolution),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*row), nil
}

// verifyClockEvent runs the geofence check against the organization's
// active targets. Organizations with no targets configured get an
// unverified, flag-free record instead of a refusal.
func (s *service) verifyClockEvent(
	ctx context.Context,
	organizationID string,
	sampleReq LocationSampleRequest,
	policy orgpolicy.Resolved,
) (geofence.Result, *uuid.UUID, error) {
	if sampleReq.Latitude == nil || sampleReq.Longitude == nil {
		return geofence.Result{}, nil, geofence.ErrInvalidSample
	}

	sample := geofence.LocationSample{
		Latitude:             *sampleReq.Latitude,
		Longitude:            *sampleReq.Longitude,
		AccuracyMeters:       sampleReq.AccuracyMeters,
		SampleTimestamp:      sampleReq.SampleTimestamp,
		SpeedMetersPerSecond: sampleReq.SpeedMetersPerSecond,
		HeadingDegrees:       sampleReq.HeadingDegrees,
		AltitudeMeters:       sampleReq.AltitudeMeters,
	}

	targets, err := s.targets.ActiveTargets(ctx, organizationID)
	if err != nil {
		s.logger.Error("load geofence targets failed", zap.Error(err))
		return geofence.Result{}, nil, err
	}

	if len(targets) == 0 {
		s.logger.Warn("no active geofence targets, clock event unverified",
			zap.String("organization_id", organizationID),
		)
		return geofence.Result{
			AccuracyMeters: sample.AccuracyMeters,
			SampleAt:       sample.SampleTimestamp,
		}, nil, nil
	}

	result, target, err := s.verifier.VerifyNearest(sample, targets, policy.GeofencePolicy)
	if err != nil {
		return geofence.Result{}, nil, err
	}

	var locationID *uuid.UUID
	if target != nil {
		id := target.ID
		locationID = &id
	}
	return result, locationID, nil
}

func (s *service) overrideAllows(ctx context.Context, requestID *string, organizationID, userID, requestType string) (bool, error) {
	if requestID == nil || *requestID == "" || s.overrides == nil {
		return false, nil
	}
	approved, err := s.overrides.IsApproved(ctx, *requestID, organizationID, userID, requestType)
	if err != nil {
		return false, err
	}
	if !approved {
		return false, shifterrors.ErrOverrideNotApproved
	}
	s.logger.Info("clock event allowed by approved out-of-range request",
		zap.String("user_id", userID),
		zap.String("override_request_id", *requestID),
		zap.String("request_type", requestType),
	)
	return true, nil
}

func (s *service) enqueueClosedEvent(ctx context.Context, tx *sql.Tx, row *Shift, rid string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ShiftClosedEvent{
		EventType:          events.EventTypeShiftClosed,
		ShiftID:            row.ID.String(),
		UserID:             row.UserID.String(),
		OrganizationID:     row.OrganizationID.String(),
		ShiftDate:          row.ShiftDate.Format("2006-01-02"),
		DurationMinutes:    derefInt(row.DurationMinutes),
		BreakMinutes:       derefInt(row.BreakMinutes),
		NetDurationMinutes: derefInt(row.NetDurationMinutes),
		CrossedMidnight:    row.CrossedMidnight,
		OccurredAt:         s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal shift closed event failed", zap.Error(err))
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "shift",
		AggregateID:   row.ID.String(),
		EventType:     events.EventTypeShiftClosed,
		Topic:         events.ShiftLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueRevisedEvent(ctx context.Context, tx *sql.Tx, row *Shift, resolution, actorID, rid string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ShiftRevisedEvent{
		EventType:       events.EventTypeShiftRevised,
		ShiftID:         row.ID.String(),
		UserID:          row.UserID.String(),
		OrganizationID:  row.OrganizationID.String(),
		Resolution:      resolution,
		ResolvedBy:      actorID,
		DurationMinutes: derefInt(row.DurationMinutes),
		OccurredAt:      s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal shift revised event failed", zap.Error(err))
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "shift",
		AggregateID:   row.ID.String(),
		EventType:     events.EventTypeShiftRevised,
		Topic:         events.ShiftLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func mapToResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:             s.ID.String(),
		UserID:         s.UserID.String(),
		OrganizationID: s.OrganizationID.String(),
		Status:         s.Status,
		ShiftDate:      s.ShiftDate.Format("2006-01-02"),
		ClockInAt:      s.ClockInAt.Format(time.RFC3339),
		ClockInVerification: VerificationResponse{
			Verified:       s.ClockInVerified,
			DistanceMeters: s.ClockInDistanceMeters,
			AccuracyMeters: s.ClockInAccuracyMeters,
			Flags:          flagStrings(splitFlags(s.ClockInFlags)),
			SampleAt:       s.ClockInSampleAt.Format(time.RFC3339),
		},
		IsRevised:      s.IsRevised,
		ResolutionNote: s.ResolutionNote,
		Notes:          s.Notes,
	}

	if s.LocationID != nil {
		v := s.LocationID.String()
		resp.LocationID = &v
	}
	if s.ClockOutAt != nil {
		v := s.ClockOutAt.Format(time.RFC3339)
		resp.ClockOutAt = &v
	}
	if s.ClockOutSampleAt != nil {
		resp.ClockOutVerification = &VerificationResponse{
			Verified:       s.ClockOutVerified,
			DistanceMeters: s.ClockOutDistanceMeters,
			AccuracyMeters: s.ClockOutAccuracyMeters,
			Flags:          flagStrings(splitFlags(s.ClockOutFlags)),
			SampleAt:       s.ClockOutSampleAt.Format(time.RFC3339),
		}
	}
	if s.DurationMinutes != nil {
		resp.Duration = &DurationResponse{
			TotalMinutes:    *s.DurationMinutes,
			BreakMinutes:    derefInt(s.BreakMinutes),
			NetMinutes:      derefInt(s.NetDurationMinutes),
			Formatted:       worktime.FormatMinutes(*s.DurationMinutes),
			CrossedMidnight: s.CrossedMidnight,
			AttributedDate:  s.ShiftDate.Format("2006-01-02"),
		}
	}
	return resp
}

func flagStrings(flags []geofence.Flag) []string {
	if len(flags) == 0 {
		return nil
	}
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = string(f)
	}
	return out
}
