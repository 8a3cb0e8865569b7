package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"connectsphere/internal/common"
	"connectsphere/internal/common/security"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwt := security.NewJWT([]byte("test-secret"), 24*time.Hour)
	hasher := security.NewPasswordHasher(bcrypt.MinCost, 2)
	return NewAuthService(repo, jwt, hasher), repo
}

func register(t *testing.T, svc *AuthService, name, email, password string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", email, err)
	}
	return resp
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	reg := register(t, svc, "Sarah Chen", "sarah@example.com", "password123")
	if reg.Token == "" {
		t.Error("expected a token from Register")
	}
	if reg.User.HashedPassword != "" {
		t.Error("Register response leaked the password hash")
	}
	if reg.User.Name != "Sarah Chen" || reg.User.Email != "sarah@example.com" {
		t.Errorf("unexpected user in Register response: %+v", reg.User)
	}

	login, err := svc.Login(context.Background(), LoginRequest{Email: "sarah@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login after Register failed: %v", err)
	}
	if login.Token == "" {
		t.Error("expected a token from Login")
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("Login returned a different account: %s vs %s", login.User.ID.Hex(), reg.User.ID.Hex())
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@example.com", Password: "pw"}},
		{"missing email", RegisterRequest{Name: "A", Password: "pw"}},
		{"missing password", RegisterRequest{Name: "A", Email: "a@example.com"}},
		{"malformed email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, common.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "First", "dup@example.com", "pw1")

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Second", Email: "dup@example.com", Password: "pw2"})
	if !errors.Is(err, common.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestLoginUnauthorizedIsUniform(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "Known", "known@example.com", "right-password")

	// Unknown email and wrong password must be indistinguishable.
	for _, req := range []LoginRequest{
		{Email: "unknown@example.com", Password: "whatever"},
		{Email: "known@example.com", Password: "wrong-password"},
	} {
		_, err := svc.Login(context.Background(), req)
		if !errors.Is(err, common.ErrUnauthorized) {
			t.Errorf("Login(%q) = %v, want ErrUnauthorized", req.Email, err)
		}
	}
}

func TestPasswordNeverStoredInPlaintext(t *testing.T) {
	svc, repo := newAuthService(t)
	reg := register(t, svc, "Sarah", "sarah@example.com", "plaintext-secret")

	stored, err := repo.FindByID(context.Background(), reg.User.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.HashedPassword == "" || stored.HashedPassword == "plaintext-secret" {
		t.Errorf("password stored incorrectly: %q", stored.HashedPassword)
	}
}

func TestGetPublicProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "Sarah", "sarah@example.com", "pw")

	user, err := svc.GetPublicProfile(context.Background(), reg.User.ID.Hex())
	if err != nil {
		t.Fatalf("GetPublicProfile failed: %v", err)
	}
	if user.HashedPassword != "" {
		t.Error("public profile contains the password hash")
	}

	// The serialized form must not carry a hash field either.
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "password") {
		t.Errorf("serialized profile mentions password: %s", raw)
	}

	if _, err := svc.GetPublicProfile(context.Background(), "64b0c0ffee0000000000beef"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing account, got %v", err)
	}
	if _, err := svc.GetPublicProfile(context.Background(), "not-a-hex-id"); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for malformed id, got %v", err)
	}
}

func TestUpdateProfileOwnership(t *testing.T) {
	svc, _ := newAuthService(t)
	a := register(t, svc, "A", "a@example.com", "pw")
	b := register(t, svc, "B", "b@example.com", "pw")

	_, err := svc.UpdateProfile(context.Background(), a.User.ID.Hex(), b.User.ID.Hex(), UpdateProfileRequest{Name: "Hijacked"})
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("cross-account update = %v, want ErrForbidden", err)
	}

	got, err := svc.GetPublicProfile(context.Background(), b.User.ID.Hex())
	if err != nil {
		t.Fatalf("GetPublicProfile: %v", err)
	}
	if got.Name != "B" {
		t.Errorf("profile changed by non-owner: %q", got.Name)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "Sarah", "sarah@example.com", "pw")
	id := reg.User.ID.Hex()

	updated, err := svc.UpdateProfile(context.Background(), id, id, UpdateProfileRequest{Bio: "New bio"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio != "New bio" {
		t.Errorf("bio = %q, want %q", updated.Bio, "New bio")
	}
	if updated.Name != "Sarah" {
		t.Errorf("name changed by a bio-only update: %q", updated.Name)
	}
	if updated.HashedPassword != "" {
		t.Error("update response leaked the password hash")
	}
}

func TestUpdateProfilePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	reg := register(t, svc, "Sarah", "sarah@example.com", "old-password")
	id := reg.User.ID.Hex()

	if _, err := svc.UpdateProfile(context.Background(), id, id, UpdateProfileRequest{Password: "new-password"}); err != nil {
		t.Fatalf("password update failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "sarah@example.com", Password: "old-password"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("old password still accepted after change: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Email: "sarah@example.com", Password: "new-password"}); err != nil {
		t.Errorf("new password rejected after change: %v", err)
	}
}

func TestLogoutIsAnAcknowledgement(t *testing.T) {
	svc, _ := newAuthService(t)
	if msg := svc.Logout(); msg == "" {
		t.Error("expected a logout acknowledgement message")
	}
}
