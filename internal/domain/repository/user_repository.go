package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectsphere/internal/common"
	"connectsphere/internal/domain/model"
	"connectsphere/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserUpdate carries a partial profile mutation; nil fields are untouched.
type UserUpdate struct {
	Name           *string
	Bio            *string
	ProfilePic     *string
	HashedPassword *string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*model.User, error)
	Search(ctx context.Context, query string, limit int64) ([]model.User, error)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository builds the repository and ensures the unique email
// index that backs the duplicate-registration conflict.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (UserRepository, error) {
	coll := db.Collection(database.UserCollection)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository: ensure email index: %w", err)
	}

	return &mongoUserRepository{coll: coll}, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindByIDs: %w", err)
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindByIDs decode: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) (*model.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.ProfilePic != nil {
		set["profilePic"] = *upd.ProfilePic
	}
	if upd.HashedPassword != nil {
		set["password"] = *upd.HashedPassword
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &model.User{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.Update: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Search(ctx context.Context, query string, limit int64) ([]model.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"email": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"password": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository.Search: %w", err)
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongoUserRepository.Search decode: %w", err)
	}
	return users, nil
}
