package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hsm-gustavo/users-graphql/internal/db"
)

// ErrDuplicateEmail is returned when a write would violate the unique email
// index.
var ErrDuplicateEmail = errors.New("email already in use")

type CreateFields struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}

// UpdateFields is the partial patch for UpdateByID; nil leaves a field
// untouched. The password is deliberately not updatable through this path.
type UpdateFields struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Store is the persistence contract the resolver layer depends on. Find
// methods return (nil, nil) when no record matches.
type Store interface {
	FindByID(ctx context.Context, id string) (*db.User, error)
	FindByEmail(ctx context.Context, email string) (*db.User, error)
	ListAll(ctx context.Context) ([]*db.User, error)
	Create(ctx context.Context, fields CreateFields) (*db.User, error)
	UpdateByID(ctx context.Context, id string, fields UpdateFields) (*db.User, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{col: database.Collection("users")}
}

// NormalizeEmail applies the uniqueness collation: emails compare
// case-insensitively, normalized at write and lookup time.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*db.User, error) {
	var u db.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find by id: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	err := s.col.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find by email: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) ListAll(ctx context.Context) ([]*db.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var users []*db.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return users, nil
}

func (s *MongoStore) Create(ctx context.Context, fields CreateFields) (*db.User, error) {
	now := time.Now().UTC()
	u := &db.User{
		ID:           uuid.NewString(),
		FirstName:    fields.FirstName,
		LastName:     fields.LastName,
		Email:        NormalizeEmail(fields.Email),
		PasswordHash: fields.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	return u, nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id string, fields UpdateFields) (*db.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.FirstName != nil {
		set["first_name"] = *fields.FirstName
	}
	if fields.LastName != nil {
		set["last_name"] = *fields.LastName
	}
	if fields.Email != nil {
		set["email"] = NormalizeEmail(*fields.Email)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u db.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("mongo update: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("mongo delete: %w", err)
	}
	return res.DeletedCount == 1, nil
}
