package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational lifecycle events such as server
// startup and shutdown. Shift-level audit records live in the audit
// package; this is for process-level events only.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
