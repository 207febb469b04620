package outofrange

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"geoshift/internal/orgpolicy"
	outofrangeerrors "geoshift/internal/outofrange/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=outofrange_service.go -destination=mock/outofrange_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, organizationID, userID string, req SubmitRequest) (RequestResponse, error)
	ListPending(ctx context.Context, organizationID string) ([]RequestResponse, error)
	ListMine(ctx context.Context, organizationID, userID string) ([]RequestResponse, error)
	Approve(ctx context.Context, organizationID, actorID, id string, req DecideRequest) (RequestResponse, error)
	Deny(ctx context.Context, organizationID, actorID, id string, req DecideRequest) (RequestResponse, error)
	// IsApproved is the contract the shift ledger consults before letting
	// an out-of-range clock event through: the referenced request must be
	// approved, belong to the same user and organization, and match the
	// event type.
	IsApproved(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	policies orgpolicy.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policies orgpolicy.Resolver) Service {
	return &service{
		db:       db,
		repo:     repo,
		policies: policies,
		logger:   zap.L().Named("outofrange.service"),
	}
}

func (s *service) Submit(ctx context.Context, organizationID, userID string, req SubmitRequest) (RequestResponse, error) {
	s.logger.Debug("submit out-of-range request",
		zap.String("organization_id", organizationID),
		zap.String("user_id", userID),
		zap.String("request_type", req.RequestType),
		zap.Float64("distance_m", req.DistanceFromGeofenceMeters),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return RequestResponse{}, outofrangeerrors.ErrInvalidOrganizationID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return RequestResponse{}, outofrangeerrors.ErrInvalidUserID
	}
	if req.RequestType != RequestTypeClockIn && req.RequestType != RequestTypeClockOut {
		return RequestResponse{}, outofrangeerrors.ErrInvalidRequestType
	}
	if req.DistanceFromGeofenceMeters < 0 {
		return RequestResponse{}, outofrangeerrors.ErrInvalidDistance
	}

	policy, err := s.policies.Resolve(ctx, organizationID)
	if err != nil {
		s.logger.Error("submit resolve policy failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if len([]rune(strings.TrimSpace(req.Reason))) < policy.ReasonMinLength {
		s.logger.Warn("submit reason too short",
			zap.String("user_id", userID),
			zap.Int("min_length", policy.ReasonMinLength),
		)
		return RequestResponse{}, outofrangeerrors.ErrReasonTooShort
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Request{
		ID:                         uuid.New(),
		UserID:                     userUUID,
		OrganizationID:             orgUUID,
		RequestType:                req.RequestType,
		Reason:                     strings.TrimSpace(req.Reason),
		DistanceFromGeofenceMeters: req.DistanceFromGeofenceMeters,
		Status:                     StatusPending,
	}
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("submit persist failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("submit out-of-range request success",
		zap.String("request_id", row.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*row), nil
}

func (s *service) ListPending(ctx context.Context, organizationID string) ([]RequestResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, outofrangeerrors.ErrInvalidOrganizationID
	}
	rows, err := s.repo.ListPendingByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListMine(ctx context.Context, organizationID, userID string) ([]RequestResponse, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, outofrangeerrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, outofrangeerrors.ErrInvalidUserID
	}
	rows, err := s.repo.ListByUserAndOrganization(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Approve(ctx context.Context, organizationID, actorID, id string, req DecideRequest) (RequestResponse, error) {
	return s.decide(ctx, organizationID, actorID, id, StatusApproved, req.Note)
}

func (s *service) Deny(ctx context.Context, organizationID, actorID, id string, req DecideRequest) (RequestResponse, error) {
	if req.Note == nil || strings.TrimSpace(*req.Note) == "" {
		return RequestResponse{}, outofrangeerrors.ErrDenialNoteRequired
	}
	return s.decide(ctx, organizationID, actorID, id, StatusDenied, req.Note)
}

func (s *service) decide(ctx context.Context, organizationID, actorID, id, targetStatus string, note *string) (RequestResponse, error) {
	s.logger.Debug("decide out-of-range request",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(organizationID); err != nil {
		return RequestResponse{}, outofrangeerrors.ErrInvalidOrganizationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, outofrangeerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, outofrangeerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, outofrangeerrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if row.Status != StatusPending {
		s.logger.Warn("decide on non-pending request",
			zap.String("request_id", id),
			zap.String("status", row.Status),
		)
		return RequestResponse{}, outofrangeerrors.ErrRequestNotPending
	}

	now := time.Now().UTC()
	row.Status = targetStatus
	row.DecidedBy = &actorUUID
	row.DecidedAt = &now
	row.DecisionNote = note

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("decide persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("decide out-of-range request success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*row), nil
}

func (s *service) IsApproved(ctx context.Context, requestID, organizationID, userID, requestType string) (bool, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return false, nil
	}
	row, err := s.repo.FindByIDAndOrganization(ctx, organizationID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if row.Status != StatusApproved {
		return false, nil
	}
	if row.UserID.String() != userID {
		return false, nil
	}
	if row.RequestType != requestType {
		return false, nil
	}
	return true, nil
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:                         r.ID.String(),
		UserID:                     r.UserID.String(),
		OrganizationID:             r.OrganizationID.String(),
		RequestType:                r.RequestType,
		Reason:                     r.Reason,
		DistanceFromGeofenceMeters: r.DistanceFromGeofenceMeters,
		Status:                     r.Status,
		CreatedAt:                  r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	resp.DecisionNote = r.DecisionNote
	return resp
}

func mapToListResponse(rows []Request) []RequestResponse {
	resp := make([]RequestResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
