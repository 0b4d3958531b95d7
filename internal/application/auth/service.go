package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"fileshare/internal/domain/account"
	domain "fileshare/internal/domain/auth"
	"fileshare/internal/domain/clock"
)

// Service defines the authentication service interface
type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
	RevokeAccount(ctx context.Context, username string) (int64, error)
	HashPassword(password string) (string, error)
}

type service struct {
	accounts    account.Repository
	sessions    domain.SessionRepository
	tokenExpiry time.Duration
	cost        int
	clock       clock.Clock
	logger      *slog.Logger
}

// Option customizes the service
type Option func(*service)

// WithClock overrides the time source used for session expiry.
func WithClock(c clock.Clock) Option {
	return func(s *service) { s.clock = c }
}

// WithCost sets the bcrypt cost for new digests.
func WithCost(cost int) Option {
	return func(s *service) { s.cost = cost }
}

// NewService creates a new auth service
func NewService(accounts account.Repository, sessions domain.SessionRepository, tokenExpiry time.Duration, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		accounts:    accounts,
		sessions:    sessions,
		tokenExpiry: tokenExpiry,
		clock:       clock.Real{},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	a, err := s.accounts.Get(req.Username)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			s.logger.Warn("login failed", "username", req.Username, "reason", "unknown account")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, legacy := CheckPassword(a.PasswordHash, req.Password)
	if !ok {
		s.logger.Warn("login failed", "username", req.Username, "reason", "bad password")
		return nil, domain.ErrInvalidCredentials
	}
	if legacy {
		s.upgradeDigest(a, req.Password)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if n, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn("failed to purge expired sessions", "error", err)
	} else if n > 0 {
		s.logger.Debug("purged expired sessions", "count", n)
	}

	session := &domain.Session{
		Token:     token,
		Username:  a.Username,
		Role:      a.Role,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenExpiry),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("login", "username", a.Username, "role", a.Role)
	return session, nil
}

// upgradeDigest replaces a legacy digest with bcrypt. Failure is logged and
// the login still succeeds.
func (s *service) upgradeDigest(a *account.Account, password string) {
	hash, err := s.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to rehash legacy password", "username", a.Username, "error", err)
		return
	}
	a.PasswordHash = hash
	if err := s.accounts.Update(a); err != nil {
		s.logger.Error("failed to store upgraded password", "username", a.Username, "error", err)
		return
	}
	s.logger.Info("upgraded legacy password digest", "username", a.Username)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.sessions.Delete(ctx, token)
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (s *service) RevokeAccount(ctx context.Context, username string) (int64, error) {
	return s.sessions.DeleteByUsername(ctx, username)
}

func (s *service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.cost)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
