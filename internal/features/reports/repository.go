package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

// Repository is the report store collaborator. It offers no server-side
// filtering; callers read the whole collection and filter in memory.
type Repository interface {
	List(ctx context.Context) ([]Report, error)
	Get(ctx context.Context, id string) (*Report, error)
	Create(ctx context.Context, r *Report) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

const reportsPath = "reports"

// FirebaseRepository stores reports under /reports in the Realtime Database
type FirebaseRepository struct {
	ref *db.Ref
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{ref: client.NewRef(reportsPath)}
}

// List reads the whole collection, keyed by push id
func (r *FirebaseRepository) List(ctx context.Context) ([]Report, error) {
	var raw map[string]Report
	if err := r.ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	items := make([]Report, 0, len(raw))
	for key, report := range raw {
		report.ID = key
		items = append(items, report)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

func (r *FirebaseRepository) Get(ctx context.Context, id string) (*Report, error) {
	var report *Report
	if err := r.ref.Child(id).Get(ctx, &report); err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", id, err)
	}
	if report == nil {
		return nil, apperrors.ErrNotFound
	}
	report.ID = id
	return report, nil
}

// Create pushes the report and copies the generated key onto it
func (r *FirebaseRepository) Create(ctx context.Context, report *Report) error {
	report.ID = ""
	child, err := r.ref.Push(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	report.ID = child.Key
	return nil
}

// Update merges fields into the report without touching the others
func (r *FirebaseRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := r.ref.Child(id).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}
	return nil
}

// MongoRepository stores reports in the "reports" collection
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository initializes the repository and creates necessary indexes
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	collection := database.Collection(reportsPath)

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) List(ctx context.Context) ([]Report, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}
	defer cursor.Close(ctx)

	items := []Report{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	for i := range items {
		items[i].Status = NormalizeStatus(string(items[i].Status))
	}
	return items, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Report, error) {
	var report Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read report %s: %w", id, err)
	}
	report.Status = NormalizeStatus(string(report.Status))
	return &report, nil
}

func (r *MongoRepository) Create(ctx context.Context, report *Report) error {
	report.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		report.ID = ""
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
