package ports

// PasswordHasher produces and checks salted adaptive-cost password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash. A malformed
	// stored hash yields false, never an error.
	Verify(plaintext, hash string) bool
}
