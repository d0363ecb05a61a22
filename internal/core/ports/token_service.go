package ports

// TokenService mints and verifies the bearer tokens that carry an
// authenticated identity between requests. Tokens are stateless: validity is
// entirely a function of the signature and the clock.
type TokenService interface {
	// Mint issues a signed token whose subject is the given user id.
	Mint(userID string) (string, error)
	// Verify reports whether the token's signature checks out against the
	// current secret and the token has not expired. All failure modes
	// (malformed, tampered, expired) are reported uniformly as false.
	Verify(token string) bool
	// Subject extracts the subject claim without verifying the signature.
	// Call only after Verify has succeeded.
	Subject(token string) (string, error)
}
