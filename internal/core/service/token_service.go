package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService mints and verifies HS256-signed JWTs. The secret and validity
// window are fixed at construction and never change for the process lifetime,
// so concurrent use needs no synchronization.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Mint issues a token with sub, iat and exp claims. The validity window is
// the single configured TTL; there is no per-call override.
func (s *TokenService) Mint(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify reports whether the token is well-formed, carries a valid HS256
// signature and has not expired. Every failure mode collapses to false so
// callers cannot distinguish a tampered token from an expired one.
func (s *TokenService) Verify(token string) bool {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	return err == nil && parsed.Valid
}

// Subject returns the sub claim without verifying the signature. It is only
// meaningful after Verify has succeeded.
func (s *TokenService) Subject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
