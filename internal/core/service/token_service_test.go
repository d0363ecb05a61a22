package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

func TestTokenService_MintVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Mint("user_42")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if !svc.Verify(token) {
		t.Fatalf("freshly minted token failed verification")
	}

	subject, err := svc.Subject(token)
	if err != nil {
		t.Fatalf("Subject returned error: %v", err)
	}
	if subject != "user_42" {
		t.Fatalf("expected subject user_42, got %s", subject)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Mint("user_1")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	if NewTokenService("secret-b", time.Hour).Verify(token) {
		t.Fatalf("token signed with another secret must not verify")
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "user_1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if svc.Verify(expired) {
		t.Fatalf("expired token must not verify")
	}
}

func TestTokenService_Verify_MissingExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := jwt.RegisteredClaims{Subject: "user_1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if svc.Verify(token) {
		t.Fatalf("token without exp claim must not verify")
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Mint("user_1")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d segments", len(parts))
	}

	flip := func(s string) string {
		b := []byte(s)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	tamperedPayload := parts[0] + "." + flip(parts[1]) + "." + parts[2]
	if svc.Verify(tamperedPayload) {
		t.Fatalf("token with tampered payload must not verify")
	}

	tamperedSignature := parts[0] + "." + parts[1] + "." + flip(parts[2])
	if svc.Verify(tamperedSignature) {
		t.Fatalf("token with tampered signature must not verify")
	}
}

func TestTokenService_Verify_WrongAlgorithm(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if svc.Verify(token) {
		t.Fatalf("token signed with a different algorithm must not verify")
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if svc.Verify(token) {
			t.Fatalf("garbage input %q must not verify", token)
		}
	}
}

func TestTokenService_Subject_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	if _, err := svc.Subject("not-a-token"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
