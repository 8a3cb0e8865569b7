package service

import (
	"context"
	"strings"

	"connectsphere/internal/domain/model"
	"connectsphere/internal/domain/repository"
)

// Result caps match the original API: standalone searches return more rows
// than the combined endpoint.
const (
	userSearchLimit = 20
	postSearchLimit = 50

	combinedUserLimit = 10
	combinedPostLimit = 20
)

type SearchService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	postService *PostService
}

func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository, postService *PostService) *SearchService {
	return &SearchService{userRepo: userRepo, postRepo: postRepo, postService: postService}
}

type SearchResults struct {
	Users []model.User     `json:"users"`
	Posts []model.PostView `json:"posts"`
}

// SearchUsers matches the query against names and emails, case-insensitive.
// A blank query is not an error; it just matches nothing.
func (s *SearchService) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	return s.searchUsers(ctx, query, userSearchLimit)
}

func (s *SearchService) SearchPosts(ctx context.Context, query string) ([]model.PostView, error) {
	return s.searchPosts(ctx, query, postSearchLimit)
}

func (s *SearchService) SearchAll(ctx context.Context, query string) (*SearchResults, error) {
	users, err := s.searchUsers(ctx, query, combinedUserLimit)
	if err != nil {
		return nil, err
	}
	posts, err := s.searchPosts(ctx, query, combinedPostLimit)
	if err != nil {
		return nil, err
	}
	return &SearchResults{Users: users, Posts: posts}, nil
}

func (s *SearchService) searchUsers(ctx context.Context, query string, limit int64) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	redacted := make([]model.User, 0, len(users))
	for i := range users {
		redacted = append(redacted, *users[i].Public())
	}
	return redacted, nil
}

func (s *SearchService) searchPosts(ctx context.Context, query string, limit int64) ([]model.PostView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.PostView{}, nil
	}

	posts, err := s.postRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return s.postService.BuildViews(ctx, posts)
}
