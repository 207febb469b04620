package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"geoshift/internal/audit"
	"geoshift/internal/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// lifecycleEnvelope covers the fields shared by every shift lifecycle
// event; type-specific fields are decoded after dispatch.
type lifecycleEnvelope struct {
	EventType      string    `json:"event_type"`
	ShiftID        string    `json:"shift_id"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ConsumeShiftLifecycle persists every lifecycle event as an immutable
// audit row. Duplicate deliveries are absorbed by the unique index on
// (shift_id, event_type).
func ConsumeShiftLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	auditRepo audit.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.shift_lifecycle")
	log.Info("shift lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shift lifecycle consumer stopped")
				return
			}
			log.Error("fetch shift lifecycle message failed", zap.Error(err))
			continue
		}

		var envelope lifecycleEnvelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			log.Error("decode shift lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		row, err := auditRowFromEvent(envelope, msg.Value)
		if err != nil {
			log.Error("map shift lifecycle event failed",
				zap.String("event_type", envelope.EventType),
				zap.String("shift_id", envelope.ShiftID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := auditRepo.Create(ctx, row); err != nil {
			if isDuplicateAuditEvent(err) {
				log.Warn("audit row already recorded for event, skipping",
					zap.String("shift_id", envelope.ShiftID),
					zap.String("event_type", envelope.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("persist shift audit event failed",
				zap.String("shift_id", envelope.ShiftID),
				zap.String("event_type", envelope.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit shift lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("shift audit event recorded",
			zap.String("shift_id", envelope.ShiftID),
			zap.String("event_type", envelope.EventType),
		)
	}
}

func auditRowFromEvent(envelope lifecycleEnvelope, payload []byte) (*audit.ShiftAuditEvent, error) {
	shiftID, err := uuid.Parse(envelope.ShiftID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(envelope.UserID)
	if err != nil {
		return nil, err
	}
	orgID, err := uuid.Parse(envelope.OrganizationID)
	if err != nil {
		return nil, err
	}

	row := &audit.ShiftAuditEvent{
		ID:             uuid.New(),
		ShiftID:        shiftID,
		EventType:      envelope.EventType,
		OrganizationID: orgID,
		UserID:         userID,
		Payload:        payload,
		OccurredAt:     envelope.OccurredAt,
	}

	switch envelope.EventType {
	case events.EventTypeShiftClosed:
		var e events.ShiftClosedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		row.DurationMinutes = &e.DurationMinutes
	case events.EventTypeShiftRevised:
		var e events.ShiftRevisedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		row.Resolution = &e.Resolution
		row.ResolvedBy = &e.ResolvedBy
		row.DurationMinutes = &e.DurationMinutes
	}

	return row, nil
}

func isDuplicateAuditEvent(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_shift_audit_event"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_shift_audit_event")
}
