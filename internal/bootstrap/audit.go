package bootstrap

import "context"

// AuditLog is one operational audit entry (server lifecycle, not business
// events; those go through the outbox).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
