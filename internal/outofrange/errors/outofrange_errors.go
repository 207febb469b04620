package outofrangeerrors

import (
	"net/http"

	"geoshift/internal/shared/apperror"
)

var (
	ErrReasonTooShort = apperror.New(
		apperror.CodeReasonTooShort,
		"justification is too short",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"out-of-range request not found",
		http.StatusNotFound,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"out-of-range request has already been decided",
		http.StatusConflict,
	)
	ErrDenialNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"note is required when denying a request",
		http.StatusBadRequest,
	)
	ErrInvalidRequestType = apperror.New(
		apperror.CodeInvalidInput,
		"request_type must be clock_in or clock_out",
		http.StatusBadRequest,
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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidDistance = apperror.New(
		apperror.CodeInvalidInput,
		"distance_from_geofence_meters must not be negative",
		http.StatusBadRequest,
	)
)
