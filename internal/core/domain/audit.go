package domain

import "time"

type AuditAction string

const (
	AuditEmployeeCreated AuditAction = "employee.created"
	AuditEmployeeUpdated AuditAction = "employee.updated"
	AuditEmployeeDeleted AuditAction = "employee.deleted"
)

// AuditEvent records a committed employee mutation and who performed it.
type AuditEvent struct {
	Action        AuditAction
	EmployeeID    int64
	ActorID       int64
	ActorUsername string
	ChangedFields []string // update only
	OccurredAt    time.Time
}
