package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// AuditRepository persists the security audit trail.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(eventsCollection)}
}

type mongoAuthEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Username  string             `bson:"username"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Type:      string(event.Type),
		Username:  event.Username,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// List returns a page of events, newest first, and the total count.
func (r *AuditRepository) List(ctx context.Context, page, limit int) ([]*domain.AuthEvent, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count auth events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list auth events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.AuthEvent
	for cursor.Next(ctx) {
		var me mongoAuthEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, 0, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, &domain.AuthEvent{
			ID:        me.ID.Hex(),
			Type:      domain.AuthEventType(me.Type),
			Username:  me.Username,
			Detail:    me.Detail,
			Timestamp: me.Timestamp.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate auth events: %w", err)
	}

	return events, total, nil
}
