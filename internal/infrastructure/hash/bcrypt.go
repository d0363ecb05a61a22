package hash

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes passwords with bcrypt at a fixed cost. bcrypt embeds a
// random salt in every digest, so hashing the same plaintext twice yields
// different outputs.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost factor. Out-of-range
// costs fall back to bcrypt's default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify recomputes the digest and compares in constant time. A malformed
// stored hash is reported as a mismatch, never as an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
