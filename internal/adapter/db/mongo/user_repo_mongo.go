package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"login-signup-service/internal/domain/user"
)

// UserRepoMongo implements the Repository interface on a MongoDB collection.
type UserRepoMongo struct {
	col *mongo.Collection
	log *zap.Logger
}

// NewUserRepoMongo creates a new instance of UserRepoMongo.
func NewUserRepoMongo(col *mongo.Collection, log *zap.Logger) *UserRepoMongo {
	return &UserRepoMongo{col: col, log: log}
}

// userDocument is the stored shape of a user record.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// EnsureIndexes creates the unique index on email. Existing duplicates make
// this fail, which is reported to the caller.
func (r *UserRepoMongo) EnsureIndexes(ctx context.Context) error {
	name, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	r.log.Info("mongo index ready", zap.String("collection", r.col.Name()), zap.String("index", name))
	return nil
}

// Create inserts a new user document.
func (r *UserRepoMongo) Create(ctx context.Context, u *user.User) (string, error) {
	if u == nil {
		return "", errors.New("user cannot be nil")
	}

	doc := userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.log.Warn("duplicate email on insert", zap.String("email", u.Email))
			return "", fmt.Errorf("failed to create user: %w", user.ErrDuplicateEmail)
		}
		r.log.Error("failed to create user in mongo", zap.Error(err), zap.String("email", u.Email))
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	id := ""
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		id = oid.Hex()
	}

	r.log.Info("user created in mongo", zap.String("id", id))
	return id, nil
}

// GetByEmail returns the user with the given email, or nil if none exists.
func (r *UserRepoMongo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from mongo", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
