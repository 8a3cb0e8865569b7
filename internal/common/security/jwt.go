package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT mints and verifies HS256 bearer tokens. The signing key and validity
// window are injected at construction instead of read from process state.
type JWT struct {
	tokenAuth *jwtauth.JWTAuth
	exp       time.Duration
}

func NewJWT(key []byte, exp time.Duration) *JWT {
	return &JWT{
		tokenAuth: jwtauth.New("HS256", key, nil),
		exp:       exp,
	}
}

// TokenAuth exposes the verifier used by the router middleware.
func (j *JWT) TokenAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateToken mints a token whose sole identity claim is the account id.
// The jti claim distinguishes concurrently valid tokens for one account.
func (j *JWT) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(j.exp).Unix(),
	}
	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the account id claim, used by middleware.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
