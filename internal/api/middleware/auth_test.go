package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectsphere/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

// protected builds the Verifier+Authenticator chain around a handler that
// echoes the authenticated account id.
func protected(j *security.JWT) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "no principal", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(userID))
	})
	return jwtauth.Verifier(j.TokenAuth())(Authenticator(echo))
}

func get(t *testing.T, h http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticatorAcceptsValidToken(t *testing.T) {
	j := security.NewJWT([]byte("secret"), 24*time.Hour)
	token, err := j.GenerateToken("account-a")
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, protected(j), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	// A token minted for A must authenticate as exactly A.
	if rec.Body.String() != "account-a" {
		t.Errorf("principal = %q, want account-a", rec.Body.String())
	}
}

func TestAuthenticatorRejects(t *testing.T) {
	j := security.NewJWT([]byte("secret"), 24*time.Hour)

	otherKey := security.NewJWT([]byte("different-secret"), 24*time.Hour)
	forged, err := otherKey.GenerateToken("account-a")
	if err != nil {
		t.Fatal(err)
	}

	expiredIssuer := security.NewJWT([]byte("secret"), -2*time.Minute)
	expired, err := expiredIssuer.GenerateToken("account-a")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Bearer not.a.token"},
		{"wrong scheme", "Basic dXNlcjpwdw=="},
		{"wrong signing key", "Bearer " + forged},
		{"expired", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, protected(j), tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

// The validity window is a hard boundary: a token still inside it is
// accepted, one past it is rejected, regardless of margin.
func TestAuthenticatorValidityWindow(t *testing.T) {
	key := []byte("secret")

	// Issued with the standard 24h window, checked one minute before expiry.
	nearExpiry := security.NewJWT(key, time.Minute)
	almostExpired, err := nearExpiry.GenerateToken("account-a")
	if err != nil {
		t.Fatal(err)
	}
	rec := get(t, protected(security.NewJWT(key, 24*time.Hour)), "Bearer "+almostExpired)
	if rec.Code != http.StatusOK {
		t.Errorf("token inside validity window rejected: status %d", rec.Code)
	}

	// One minute past expiry.
	pastExpiry := security.NewJWT(key, -time.Minute)
	justExpired, err := pastExpiry.GenerateToken("account-a")
	if err != nil {
		t.Fatal(err)
	}
	rec = get(t, protected(security.NewJWT(key, 24*time.Hour)), "Bearer "+justExpired)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("token past validity window accepted: status %d", rec.Code)
	}
}
