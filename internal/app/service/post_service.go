package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"connectsphere/internal/common"
	"connectsphere/internal/domain/model"
	"connectsphere/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

type CreatePostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// UpdatePostRequest is partial; empty fields are left untouched.
type UpdatePostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

type ReactionResponse struct {
	Post   *model.PostView `json:"post"`
	Action string          `json:"action"`
}

func (s *PostService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*model.PostView, error) {
	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", common.ErrBadRequest)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrValidation)
	}

	now := time.Now()
	post := &model.Post{
		ID:        primitive.NewObjectID(),
		UserID:    author,
		Content:   content,
		Image:     req.Image,
		Likes:     []primitive.ObjectID{},
		Dislikes:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.buildView(ctx, post)
}

func (s *PostService) ListPosts(ctx context.Context) ([]model.PostView, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.BuildViews(ctx, posts)
}

func (s *PostService) UpdatePost(ctx context.Context, callerID, postID string, req UpdatePostRequest) (*model.PostView, error) {
	post, err := s.findOwned(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}

	upd := repository.PostUpdate{}
	if req.Content != "" {
		content := strings.TrimSpace(req.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: content cannot be blank", common.ErrValidation)
		}
		upd.Content = &content
	}
	if req.Image != "" {
		upd.Image = &req.Image
	}

	updated, err := s.postRepo.Update(ctx, post.ID, upd)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, updated)
}

func (s *PostService) DeletePost(ctx context.Context, callerID, postID string) error {
	post, err := s.findOwned(ctx, callerID, postID)
	if err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// ToggleReaction flips the caller's membership in the reaction set matching
// kind, drops it from the opposite set, and reports which transition ran.
// Anyone authenticated may react, including the post's author.
func (s *PostService) ToggleReaction(ctx context.Context, callerID, postID string, kind model.ReactionKind) (*ReactionResponse, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post id", common.ErrBadRequest)
	}
	actor, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", common.ErrBadRequest)
	}

	post, err := s.postRepo.ToggleReaction(ctx, id, actor, kind)
	if err != nil {
		return nil, err
	}

	// The repo hands back the post after the transition, so membership in
	// the matching set says whether the reaction was added or removed.
	action := kind.RemovedAction()
	if post.HasReaction(actor, kind) {
		action = kind.AppliedAction()
	}

	view, err := s.buildView(ctx, post)
	if err != nil {
		return nil, err
	}
	return &ReactionResponse{Post: view, Action: action}, nil
}

func (s *PostService) findOwned(ctx context.Context, callerID, postID string) (*model.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post id", common.ErrBadRequest)
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID.Hex() != callerID {
		return nil, fmt.Errorf("%w: only the author may modify this post", common.ErrForbidden)
	}
	return post, nil
}

func (s *PostService) buildView(ctx context.Context, post *model.Post) (*model.PostView, error) {
	views, err := s.BuildViews(ctx, []model.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// BuildViews resolves authors and reaction-set members to display data with
// a single batched lookup across all posts.
func (s *PostService) BuildViews(ctx context.Context, posts []model.Post) ([]model.PostView, error) {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	collect := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for i := range posts {
		collect(posts[i].UserID)
		for _, id := range posts[i].Likes {
			collect(id)
		}
		for _, id := range posts[i].Dislikes {
			collect(id)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[primitive.ObjectID]model.UserRef, len(users))
	for i := range users {
		refs[users[i].ID] = users[i].Ref()
	}
	resolve := func(id primitive.ObjectID) model.UserRef {
		if ref, ok := refs[id]; ok {
			return ref
		}
		return model.UserRef{ID: id}
	}

	views := make([]model.PostView, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		view := model.PostView{
			ID:        p.ID,
			Author:    resolve(p.UserID),
			Content:   p.Content,
			Image:     p.Image,
			Likes:     make([]model.UserRef, 0, len(p.Likes)),
			Dislikes:  make([]model.UserRef, 0, len(p.Dislikes)),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		for _, id := range p.Likes {
			view.Likes = append(view.Likes, resolve(id))
		}
		for _, id := range p.Dislikes {
			view.Dislikes = append(view.Dislikes, resolve(id))
		}
		views = append(views, view)
	}
	return views, nil
}
