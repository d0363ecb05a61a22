package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// LoginThrottle limits repeated failed logins per username. Implementations
// are best-effort: an unavailable backend must not block logins.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login. Registration mutates the
// credential store exactly once; login performs no mutation of it.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle LoginThrottle   // optional
	audit    ports.AuditSink // optional
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Register creates a USER account. Uniqueness is enforced by the store's
// unique index; a duplicate surfaces as domain.ErrUserExists without a second
// mutation.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Mint(created.ID)
	if err != nil {
		return nil, "", err
	}

	s.record(domain.EventUserRegistered, username, "")
	s.log.Info().Str("username", username).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and mints a token. Unknown username and wrong
// password are reported identically to prevent username enumeration.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttled(ctx, username) {
		s.record(domain.EventLoginFailed, username, "throttled")
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.failure(ctx, username, "unknown username")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.failure(ctx, username, "wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
		}
	}
	s.record(domain.EventLoginSucceeded, username, "")
	return token, user, nil
}

func (s *AuthService) throttled(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.TooManyFailures(ctx, username)
	if err != nil {
		// Degrade open: a broken throttle backend must not lock everyone out.
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) failure(ctx context.Context, username, detail string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
		}
	}
	s.record(domain.EventLoginFailed, username, detail)
}

func (s *AuthService) record(typ domain.AuthEventType, username, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Type:      string(typ),
		Username:  username,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

// EnsureAdmin guarantees an ADMIN account with the given username exists.
// An existing user is left untouched, whatever its role or password.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, hasher ports.PasswordHasher, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}

	if _, err := users.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	// Lost the race against a concurrent bootstrap: the account exists.
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}
