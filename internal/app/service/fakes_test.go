package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"connectsphere/internal/common"
	"connectsphere/internal/domain/model"
	"connectsphere/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories mirroring the mongo implementations' contracts,
// including the atomic reaction transition.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := u
	return &found, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.ProfilePic != nil {
		u.ProfilePic = *upd.ProfilePic
	}
	if upd.HashedPassword != nil {
		u.HashedPassword = *upd.HashedPassword
	}
	r.users[id] = u
	found := u
	return &found, nil
}

func (r *fakeUserRepo) Search(_ context.Context, query string, limit int64) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []model.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			u.HashedPassword = ""
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]model.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := p
	return &found, nil
}

func (r *fakePostRepo) FindAll(_ context.Context) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) Update(_ context.Context, id primitive.ObjectID, upd repository.PostUpdate) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	r.posts[id] = p
	found := p
	return &found, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) ToggleReaction(_ context.Context, postID, userID primitive.ObjectID, kind model.ReactionKind) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, common.ErrNotFound
	}

	// Clone so earlier FindByID results are not aliased.
	same := append([]primitive.ObjectID{}, p.Likes...)
	other := append([]primitive.ObjectID{}, p.Dislikes...)
	if kind == model.ReactionDislike {
		same, other = other, same
	}

	if idx := indexOf(same, userID); idx >= 0 {
		same = append(same[:idx], same[idx+1:]...)
	} else {
		same = append(same, userID)
		if idx := indexOf(other, userID); idx >= 0 {
			other = append(other[:idx], other[idx+1:]...)
		}
	}

	if kind == model.ReactionDislike {
		p.Dislikes, p.Likes = same, other
	} else {
		p.Likes, p.Dislikes = same, other
	}
	r.posts[postID] = p
	found := p
	return &found, nil
}

func (r *fakePostRepo) Search(_ context.Context, query string, limit int64) ([]model.Post, error) {
	posts, _ := r.FindAll(context.Background())
	q := strings.ToLower(query)
	var out []model.Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Content), q) {
			out = append(out, p)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func indexOf(ids []primitive.ObjectID, id primitive.ObjectID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
