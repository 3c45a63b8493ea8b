package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corehr/employee-api/internal/core/domain"
)

const auditCollection = "employee_audit"

type auditInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// AuditRepository implements ports.AuditRepository using MongoDB.
// Documents are append-only; nothing in the service reads them back.
type AuditRepository struct {
	coll auditInserter
	now  func() time.Time
}

// NewAuditRepository creates an AuditRepository on the employee_audit collection.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return newAuditRepository(db.Collection(auditCollection))
}

func newAuditRepository(coll auditInserter) *AuditRepository {
	return &AuditRepository{coll: coll, now: time.Now}
}

// Insert persists one audit event.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"action":         string(event.Action),
		"employee_id":    event.EmployeeID,
		"actor_id":       event.ActorID,
		"actor_username": event.ActorUsername,
		"occurred_at":    event.OccurredAt.UTC(),
		"recorded_at":    r.now().UTC(),
	}
	if len(event.ChangedFields) > 0 {
		doc["changed_fields"] = event.ChangedFields
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
