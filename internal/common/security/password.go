package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a bounded-concurrency guard. Hashing is
// intentionally CPU-expensive; the guard keeps a burst of registrations from
// starving other in-flight requests.
type PasswordHasher struct {
	cost int
	sem  chan struct{}
}

func NewPasswordHasher(cost, maxConcurrent int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash computes a salted bcrypt hash of the password. bcrypt generates its
// own random per-password salt and embeds it in the returned string.
func (h *PasswordHasher) Hash(password string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether the password matches the stored hash. Comparison is
// as expensive as hashing, so it goes through the same guard.
func (h *PasswordHasher) Check(password, hash string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
