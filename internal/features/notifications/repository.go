package notifications

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

// Repository stores notifications per recipient
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListForRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

const notificationsPath = "notifications"

// FirebaseRepository keeps notifications at notifications/{uid}/{id}
type FirebaseRepository struct {
	ref *db.Ref
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{ref: client.NewRef(notificationsPath)}
}

func (r *FirebaseRepository) Create(ctx context.Context, n *Notification) error {
	if err := r.ref.Child(n.RecipientID).Child(n.ID).Set(ctx, n); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

func (r *FirebaseRepository) ListForRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	var raw map[string]Notification
	if err := r.ref.Child(recipientID).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	out := make([]Notification, 0, len(raw))
	for id, n := range raw {
		n.ID = id
		n.RecipientID = recipientID
		out = append(out, n)
	}
	return out, nil
}

// MarkRead only touches notifications under the recipient's own node
func (r *FirebaseRepository) MarkRead(ctx context.Context, recipientID, id string) error {
	node := r.ref.Child(recipientID).Child(id)

	var existing *Notification
	if err := node.Get(ctx, &existing); err != nil {
		return fmt.Errorf("failed to read notification: %w", err)
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}

	if err := node.Update(ctx, map[string]interface{}{"isRead": true}); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead flips every unread flag in one multi-path update
func (r *FirebaseRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	items, err := r.ListForRecipient(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	fields := map[string]interface{}{}
	for _, n := range items {
		if !n.IsRead {
			fields[n.ID+"/isRead"] = true
		}
	}
	if len(fields) == 0 {
		return 0, nil
	}

	if err := r.ref.Child(recipientID).Update(ctx, fields); err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return int64(len(fields)), nil
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	collection := database.Collection("notifications")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipientId", Value: 1},
				{Key: "isRead", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Create(ctx context.Context, n *Notification) error {
	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListForRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "isRead", Value: 1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"recipientId": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) MarkRead(ctx context.Context, recipientID, id string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "recipientId": recipientID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"recipientId": recipientID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

