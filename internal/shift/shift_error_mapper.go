package shift

import (
	"errors"
	"strings"

	shifterrors "geoshift/internal/shift/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uqShiftsUserOpen is the partial unique index on (user_id) WHERE
// status = 'open'. A violation means a concurrent clock-in won the
// race; the loser reports the same error as a sequential duplicate.
const uqShiftsUserOpen = "uq_shifts_user_open"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shifterrors.ErrShiftNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uqShiftsUserOpen {
			return shifterrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uqShiftsUserOpen) {
		return shifterrors.ErrAlreadyClockedIn
	}

	return err
}
