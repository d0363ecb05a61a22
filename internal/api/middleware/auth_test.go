package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

type stubTokens struct {
	subjects map[string]string // token -> subject; only listed tokens verify
}

func (s *stubTokens) Mint(userID string) (string, error) { return "tok_" + userID, nil }

func (s *stubTokens) Verify(token string) bool {
	_, ok := s.subjects[token]
	return ok
}

func (s *stubTokens) Subject(token string) (string, error) {
	subject, ok := s.subjects[token]
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return subject, nil
}

type stubUsers struct {
	byID map[string]*domain.User
}

func (s *stubUsers) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUsers) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type sinkStub struct {
	events []ports.AuthEventInput
}

func (s *sinkStub) Enqueue(event ports.AuthEventInput) {
	s.events = append(s.events, event)
}

func newIdentityTestContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestIdentity_NoHeader_ContinuesAnonymous(t *testing.T) {
	mw := Identity(&stubTokens{}, &stubUsers{}, nil, zerolog.Nop())
	c, _ := newIdentityTestContext("")

	called := false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected the next handler to run")
	}
	if _, ok := IdentityFrom(c); ok {
		t.Fatal("anonymous request must not carry an identity")
	}
}

func TestIdentity_NonBearerScheme_ContinuesAnonymous(t *testing.T) {
	mw := Identity(&stubTokens{}, &stubUsers{}, nil, zerolog.Nop())
	c, _ := newIdentityTestContext("Basic dXNlcjpwYXNz")

	called := false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected the next handler to run")
	}
	if _, ok := IdentityFrom(c); ok {
		t.Fatal("non-bearer credentials must not establish an identity")
	}
}

func TestIdentity_InvalidToken_ContinuesAnonymous(t *testing.T) {
	audit := &sinkStub{}
	mw := Identity(&stubTokens{}, &stubUsers{}, audit, zerolog.Nop())
	c, _ := newIdentityTestContext("Bearer garbage")

	called := false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("an invalid token must degrade to anonymous, not reject")
	}
	if _, ok := IdentityFrom(c); ok {
		t.Fatal("invalid token must not establish an identity")
	}
	if len(audit.events) != 1 || audit.events[0].Type != string(domain.EventTokenRejected) {
		t.Fatalf("expected a token_rejected audit event, got %+v", audit.events)
	}
}

func TestIdentity_ValidToken_SetsIdentity(t *testing.T) {
	tokens := &stubTokens{subjects: map[string]string{"tok_u1": "u1"}}
	users := &stubUsers{byID: map[string]*domain.User{
		"u1": {ID: "u1", Username: "frank", Role: domain.RoleAdmin},
	}}
	mw := Identity(tokens, users, nil, zerolog.Nop())
	c, _ := newIdentityTestContext("Bearer tok_u1")

	called := false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected the next handler to run")
	}
	id, ok := IdentityFrom(c)
	if !ok {
		t.Fatal("expected an identity to be set")
	}
	if id.UserID != "u1" || id.Username != "frank" || id.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIdentity_UnknownSubject_Rejects(t *testing.T) {
	audit := &sinkStub{}
	tokens := &stubTokens{subjects: map[string]string{"tok_ghost": "ghost"}}
	mw := Identity(tokens, &stubUsers{}, audit, zerolog.Nop())
	c, _ := newIdentityTestContext("Bearer tok_ghost")

	called := false
	err := mw(okHandler(&called))(c)
	if called {
		t.Fatal("a verified token with an unknown subject must not reach the handler")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if len(audit.events) != 1 || audit.events[0].Type != string(domain.EventIdentityViolation) {
		t.Fatalf("expected an identity_violation audit event, got %+v", audit.events)
	}
}

func TestRequireAuth(t *testing.T) {
	mw := RequireAuth()

	c, _ := newIdentityTestContext("")
	called := false
	err := mw(okHandler(&called))(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
	if called {
		t.Fatal("handler must not run without an identity")
	}

	c, _ = newIdentityTestContext("")
	c.Set(identityKey, domain.Identity{UserID: "u1", Username: "frank", Role: domain.RoleUser})
	called = false
	if err := mw(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected the handler to run with an identity")
	}
}
