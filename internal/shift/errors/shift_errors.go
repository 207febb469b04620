package shifterrors

import (
	"net/http"

	"geoshift/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeAlreadyClockedIn,
		"an open shift already exists, clock out first",
		http.StatusConflict,
	)
	ErrNoOpenShift = apperror.New(
		apperror.CodeNoOpenShift,
		"no open shift to clock out of, clock in first",
		http.StatusNotFound,
	)
	ErrLocationRejected = apperror.New(
		apperror.CodeLocationRejected,
		"location sample rejected, retry with a fresh GPS fix",
		http.StatusUnprocessableEntity,
	)
	ErrOutOfRange = apperror.New(
		apperror.CodeOutOfRange,
		"location is outside the work area, submit an out-of-range request",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidInterval = apperror.New(
		apperror.CodeInvalidInterval,
		"clock out must be after clock in",
		http.StatusBadRequest,
	)
	ErrShiftNotOpen = apperror.New(
		apperror.CodeShiftNotOpen,
		"shift is not open, refresh and retry",
		http.StatusConflict,
	)
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
	// ErrIntegrityViolation means the at-most-one-open-shift invariant
	// was found already broken. Never auto-resolved; surfaced for
	// manual repair.
	ErrIntegrityViolation = apperror.New(
		apperror.CodeIntegrityViolation,
		"multiple open shifts found for user, data repair required",
		http.StatusInternalServerError,
	)
	ErrOverrideNotApproved = apperror.New(
		apperror.CodeForbidden,
		"referenced out-of-range request is not approved for this clock event",
		http.StatusForbidden,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidShiftID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift id",
		http.StatusBadRequest,
	)
	ErrInvalidResolution = apperror.New(
		apperror.CodeInvalidInput,
		"resolution must be forgot or actual_hours",
		http.StatusBadRequest,
	)
	ErrActualClockOutRequired = apperror.New(
		apperror.CodeInvalidInput,
		"actual_clock_out is required for actual_hours resolution",
		http.StatusBadRequest,
	)
)
