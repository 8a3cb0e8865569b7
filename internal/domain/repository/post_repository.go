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

// PostUpdate carries a partial post mutation; nil fields are untouched.
type PostUpdate struct {
	Content *string
	Image   *string
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ToggleReaction(ctx context.Context, postID, userID primitive.ObjectID, kind model.ReactionKind) (*model.Post, error)
	Search(ctx context.Context, query string, limit int64) ([]model.Post, error)
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{coll: db.Collection(database.PostCollection)}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *model.Post) error {
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("mongoPostRepository.Create: %w", err)
	}
	return nil
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post := &model.Post{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *mongoPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongoPostRepository.FindAll: %w", err)
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("mongoPostRepository.FindAll decode: %w", err)
	}
	return posts, nil
}

func (r *mongoPostRepository) Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) (*model.Post, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	post := &model.Post{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoPostRepository.Update: %w", err)
	}
	return post, nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongoPostRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ToggleReaction performs the whole like/dislike transition in one
// conditional update so two toggles by the same account cannot interleave.
// The pipeline removes the account from the opposite set and, depending on
// current membership, adds it to or removes it from the matching set. The
// post is returned as it stands after the update; membership in the matching
// set tells the caller which transition happened.
func (r *mongoPostRepository) ToggleReaction(ctx context.Context, postID, userID primitive.ObjectID, kind model.ReactionKind) (*model.Post, error) {
	same, other := "likes", "dislikes"
	if kind == model.ReactionDislike {
		same, other = "dislikes", "likes"
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: same, Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{userID, "$" + same}}},
				bson.D{{Key: "$setDifference", Value: bson.A{"$" + same, bson.A{userID}}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{"$" + same, bson.A{userID}}}},
			}}}},
			{Key: other, Value: bson.D{{Key: "$setDifference", Value: bson.A{"$" + other, bson.A{userID}}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	post := &model.Post{}
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": postID}, pipeline, opts).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoPostRepository.ToggleReaction: %w", err)
	}
	return post, nil
}

func (r *mongoPostRepository) Search(ctx context.Context, query string, limit int64) ([]model.Post, error) {
	filter := bson.M{"content": bson.M{"$regex": query, "$options": "i"}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongoPostRepository.Search: %w", err)
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("mongoPostRepository.Search decode: %w", err)
	}
	return posts, nil
}
