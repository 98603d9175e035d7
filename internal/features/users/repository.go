package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

// Repository stores user profiles per role
type Repository interface {
	Get(ctx context.Context, uid string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, role, uid string, fields map[string]interface{}) error
	ListByRole(ctx context.Context, role string) ([]User, error)
	AddPoints(ctx context.Context, uid string, delta int) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

var ErrInvalidDelta = errors.New("points delta must be positive")

func rolePath(role string) string {
	return "users/" + role + "s"
}

// FirebaseRepository keeps users at users/citizens/{uid} and users/admins/{uid}
type FirebaseRepository struct {
	client *db.Client
}

func NewFirebaseRepository(client *db.Client) *FirebaseRepository {
	return &FirebaseRepository{client: client}
}

// Get looks the uid up under both roles
func (r *FirebaseRepository) Get(ctx context.Context, uid string) (*User, error) {
	for _, role := range []string{RoleCitizen, RoleAdmin} {
		var u *User
		if err := r.client.NewRef(rolePath(role)).Child(uid).Get(ctx, &u); err != nil {
			return nil, fmt.Errorf("failed to read user %s: %w", uid, err)
		}
		if u != nil {
			u.UID = uid
			u.Role = role
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *FirebaseRepository) Create(ctx context.Context, u *User) error {
	if err := r.client.NewRef(rolePath(u.Role)).Child(u.UID).Set(ctx, u); err != nil {
		return fmt.Errorf("failed to write user %s: %w", u.UID, err)
	}
	return nil
}

func (r *FirebaseRepository) Update(ctx context.Context, role, uid string, fields map[string]interface{}) error {
	if err := r.client.NewRef(rolePath(role)).Child(uid).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

func (r *FirebaseRepository) ListByRole(ctx context.Context, role string) ([]User, error) {
	var raw map[string]User
	if err := r.client.NewRef(rolePath(role)).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to read %ss: %w", role, err)
	}

	out := make([]User, 0, len(raw))
	for uid, u := range raw {
		u.UID = uid
		u.Role = role
		out = append(out, u)
	}
	return out, nil
}

// AddPoints increments the citizen's counter inside a transaction.
// Unknown citizens yield ErrNotFound.
func (r *FirebaseRepository) AddPoints(ctx context.Context, uid string, delta int) error {
	if delta <= 0 {
		return ErrInvalidDelta
	}

	citizen := r.client.NewRef(rolePath(RoleCitizen)).Child(uid)
	var existing map[string]interface{}
	if err := citizen.Get(ctx, &existing); err != nil {
		return fmt.Errorf("failed to read citizen %s: %w", uid, err)
	}
	if existing == nil {
		return apperrors.ErrNotFound
	}

	ref := citizen.Child("points")
	err := ref.Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var current int
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		return current + delta, nil
	})
	if err != nil {
		return fmt.Errorf("failed to add points for %s: %w", uid, err)
	}
	return nil
}

// FindByEmail scans both role collections; the store has no secondary index
func (r *FirebaseRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, role := range []string{RoleCitizen, RoleAdmin} {
		list, err := r.ListByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		for i := range list {
			if strings.EqualFold(list[i].Email, email) {
				return &list[i], nil
			}
		}
	}
	return nil, nil
}

// MongoRepository keeps every user in one "users" collection keyed by uid
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository initializes the repository and creates necessary indexes
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	collection := database.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "points", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})

	return &MongoRepository{collection: collection}
}

func (r *MongoRepository) Get(ctx context.Context, uid string) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read user %s: %w", uid, err)
	}
	return &u, nil
}

func (r *MongoRepository) Create(ctx context.Context, u *User) error {
	_, err := r.collection.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %s: %w", u.UID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to write user %s: %w", u.UID, err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, role, uid string, fields map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid, "role": role}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return requireMatch(result)
}

func (r *MongoRepository) ListByRole(ctx context.Context, role string) ([]User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role": role}, options.Find().SetSort(bson.D{{Key: "points", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to read %ss: %w", role, err)
	}
	defer cursor.Close(ctx)

	out := []User{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %ss: %w", role, err)
	}
	return out, nil
}

func (r *MongoRepository) AddPoints(ctx context.Context, uid string, delta int) error {
	if delta <= 0 {
		return ErrInvalidDelta
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": uid, "role": RoleCitizen},
		bson.M{"$inc": bson.M{"points": delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to add points for %s: %w", uid, err)
	}
	return requireMatch(result)
}

// requireMatch maps an update that hit no document to ErrNotFound
func requireMatch(result *mongo.UpdateResult) error {
	if result == nil || result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	opts := options.FindOne().SetCollation(&options.Collation{Locale: "en", Strength: 2})
	err := r.collection.FindOne(ctx, bson.M{"email": email}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
