package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectsphere/internal/common"
	"connectsphere/internal/common/security"
	"connectsphere/internal/domain/model"
	"connectsphere/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService struct {
	userRepo repository.UserRepository
	jwt      *security.JWT
	hasher   *security.PasswordHasher
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, jwt *security.JWT, hasher *security.PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		hasher:   hasher,
		validate: validator.New(),
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial update; empty fields are left untouched.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:             primitive.NewObjectID(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate email.
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same answer as a bad password so callers cannot probe
			// which emails are registered.
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Check(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	// A fresh token per login; earlier unexpired tokens stay valid.
	token, err := s.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

// Logout acknowledges the request and nothing else. Tokens are stateless, so
// the server has nothing to discard; clients drop the token locally.
func (s *AuthService) Logout() string {
	return "Logged out successfully"
}

func (s *AuthService) GetPublicProfile(ctx context.Context, userID string) (*model.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, callerID, targetID string, req UpdateProfileRequest) (*model.User, error) {
	if callerID != targetID {
		return nil, fmt.Errorf("%w: you can only update your own profile", common.ErrForbidden)
	}

	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", common.ErrBadRequest)
	}

	upd := repository.UserUpdate{}
	if req.Name != "" {
		upd.Name = &req.Name
	}
	if req.Bio != "" {
		upd.Bio = &req.Bio
	}
	if req.ProfilePic != "" {
		upd.ProfilePic = &req.ProfilePic
	}
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		upd.HashedPassword = &hashed
	}

	user, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
