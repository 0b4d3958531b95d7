package account

import (
	"context"
	"log/slog"
	"strings"

	domain "fileshare/internal/domain/account"
	"fileshare/internal/domain/auth"
	"fileshare/internal/domain/clock"
)

// Hasher produces password digests
type Hasher interface {
	HashPassword(password string) (string, error)
}

// SessionRevoker ends every session of an account
type SessionRevoker interface {
	RevokeAccount(ctx context.Context, username string) (int64, error)
}

// Service defines account administration
type Service interface {
	Add(ctx context.Context, s *auth.Session, req domain.CreateAccountRequest) (*domain.Account, error)
	Delete(ctx context.Context, s *auth.Session, username string) error
	List(ctx context.Context, s *auth.Session) ([]domain.Account, error)
	SetPassword(ctx context.Context, s *auth.Session, username, password string) error
	EnsureDefaultAdmin(ctx context.Context, password string) (bool, error)
}

type service struct {
	repo     domain.Repository
	hasher   Hasher
	sessions SessionRevoker
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new account service
func NewService(repo domain.Repository, hasher Hasher, sessions SessionRevoker, c clock.Clock, logger *slog.Logger) Service {
	if c == nil {
		c = clock.Real{}
	}
	return &service{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		clock:    c,
		logger:   logger,
	}
}

func (s *service) Add(ctx context.Context, sess *auth.Session, req domain.CreateAccountRequest) (*domain.Account, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if strings.ContainsAny(username, "/\\\x00") || len(username) > 64 {
		return nil, domain.ErrInvalidUsername
	}
	role, ok := domain.ParseRole(string(req.Role))
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	a := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Created:      s.clock.Now(),
	}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "username", username, "role", role, "by", sess.Username)
	return a, nil
}

// Delete checks the login guard, then the protected name, then the admin
// guard, so deleting "admin" reports the protection to any logged-in caller.
func (s *service) Delete(ctx context.Context, sess *auth.Session, username string) error {
	if err := sess.RequireLogin(); err != nil {
		return err
	}
	if username == domain.ProtectedUsername {
		return domain.ErrProtectedAccount
	}
	if err := sess.RequireAdmin(); err != nil {
		return err
	}

	if err := s.repo.Delete(username); err != nil {
		return err
	}

	revoked, err := s.sessions.RevokeAccount(ctx, username)
	if err != nil {
		s.logger.Error("failed to revoke sessions", "username", username, "error", err)
	}
	s.logger.Info("account deleted", "username", username, "by", sess.Username, "revoked_sessions", revoked)
	return nil
}

func (s *service) List(ctx context.Context, sess *auth.Session) ([]domain.Account, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.repo.List()
}

func (s *service) SetPassword(ctx context.Context, sess *auth.Session, username, password string) error {
	if err := sess.RequireAdmin(); err != nil {
		return err
	}
	if password == "" {
		return domain.ErrMissingCredentials
	}
	a, err := s.repo.Get(username)
	if err != nil {
		return err
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	if err := s.repo.Update(a); err != nil {
		return err
	}
	if _, err := s.sessions.RevokeAccount(ctx, username); err != nil {
		s.logger.Error("failed to revoke sessions", "username", username, "error", err)
	}
	s.logger.Info("password changed", "username", username, "by", sess.Username)
	return nil
}

// EnsureDefaultAdmin seeds the protected admin account when no accounts exist.
func (s *service) EnsureDefaultAdmin(ctx context.Context, password string) (bool, error) {
	n, err := s.repo.Count()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return false, err
	}
	err = s.repo.Create(&domain.Account{
		Username:     domain.ProtectedUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Created:      s.clock.Now(),
	})
	if err != nil {
		return false, err
	}
	s.logger.Warn("created default admin account, change its password", "username", domain.ProtectedUsername)
	return true, nil
}
