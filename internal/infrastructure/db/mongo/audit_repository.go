package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recordops/ledger-api/internal/core/domain"
)

const auditCollection = "audit_logs"

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ActorID       string             `bson:"actor_id"`
	Action        string             `bson:"action"`
	TargetID      string             `bson:"target_id,omitempty"`
	Detail        string             `bson:"detail,omitempty"`
	CorrelationID string             `bson:"correlation_id,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(ctx, mongoAuditEntry{
		ActorID:       entry.ActorID,
		Action:        entry.Action,
		TargetID:      entry.TargetID,
		Detail:        entry.Detail,
		CorrelationID: entry.CorrelationID,
		CreatedAt:     created.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindAll(ctx context.Context, limit, offset int64) ([]*domain.AuditEntry, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*domain.AuditEntry
	for cur.Next(ctx) {
		var me mongoAuditEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, toDomainAuditEntry(&me))
	}
	return entries, cur.Err()
}

func (r *AuditRepository) FindByID(ctx context.Context, id string) (*domain.AuditEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAuditEntryNotFound
	}

	var me mongoAuditEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAuditEntryNotFound
		}
		return nil, fmt.Errorf("find audit entry: %w", err)
	}
	return toDomainAuditEntry(&me), nil
}

func toDomainAuditEntry(me *mongoAuditEntry) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:            me.ID.Hex(),
		ActorID:       me.ActorID,
		Action:        me.Action,
		TargetID:      me.TargetID,
		Detail:        me.Detail,
		CorrelationID: me.CorrelationID,
		CreatedAt:     unixToTime(me.CreatedAt),
	}
}
