package ports

import (
	"context"

	"github.com/corehr/employee-api/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events to the append-only audit store.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
