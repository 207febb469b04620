package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Shift ledger domain codes. Kept here so every surface (HTTP,
	// worker logs, audit rows) reports the same identifier.
	CodeAlreadyClockedIn   = "ALREADY_CLOCKED_IN"
	CodeNoOpenShift        = "NO_OPEN_SHIFT"
	CodeLocationRejected   = "LOCATION_REJECTED"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeInvalidInterval    = "INVALID_INTERVAL"
	CodeShiftNotOpen       = "SHIFT_NOT_OPEN"
	CodeReasonTooShort     = "REASON_TOO_SHORT"
	CodeIntegrityViolation = "INTEGRITY_VIOLATION"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
