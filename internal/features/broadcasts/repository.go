package broadcasts

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, b *Broadcast) error
	List(ctx context.Context) ([]Broadcast, error)
}

const broadcastsPath = "broadcasts"

// FirebaseRepository keeps broadcasts at broadcasts/{id}
type FirebaseRepository struct {
	ref *db.Ref
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{ref: client.NewRef(broadcastsPath)}
}

func (r *FirebaseRepository) Create(ctx context.Context, b *Broadcast) error {
	if err := r.ref.Child(b.ID).Set(ctx, b); err != nil {
		return fmt.Errorf("failed to write broadcast %s: %w", b.ID, err)
	}
	return nil
}

func (r *FirebaseRepository) List(ctx context.Context) ([]Broadcast, error) {
	var raw map[string]Broadcast
	if err := r.ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read broadcasts: %w", err)
	}

	out := make([]Broadcast, 0, len(raw))
	for id, b := range raw {
		b.ID = id
		out = append(out, b)
	}
	return out, nil
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	collection := database.Collection("broadcasts")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "sentAt", Value: -1}},
	})

	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Create(ctx context.Context, b *Broadcast) error {
	if _, err := r.collection.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to write broadcast %s: %w", b.ID, err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Broadcast, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to read broadcasts: %w", err)
	}
	defer cursor.Close(ctx)

	out := []Broadcast{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode broadcasts: %w", err)
	}
	return out, nil
}
