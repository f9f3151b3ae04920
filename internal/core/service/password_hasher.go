package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the 10-round salt generation used for stored hashes.
const PasswordCost = 10

// dummyDigest is compared against when an account does not exist so that a
// missing email costs as much as a wrong password.
var dummyDigest = mustHash("venuehub-timing-equaliser")

// BcryptHasher implements ports.PasswordHasher. Each digest embeds its own
// random salt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("password hasher: empty password")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether raw matches digest. bcrypt compares in constant time.
func (h *BcryptHasher) Verify(raw, digest string) bool {
	if digest == "" {
		digest = dummyDigest
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}

func mustHash(raw string) string {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		panic(err)
	}
	return string(digest)
}
