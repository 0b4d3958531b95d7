package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fileshare/internal/domain/account"
	domain "fileshare/internal/domain/auth"
	"fileshare/internal/infrastructure/database"
	"fileshare/internal/infrastructure/logging"
	"fileshare/internal/infrastructure/repository"
	"fileshare/internal/testutil"
)

type fixture struct {
	svc      Service
	accounts account.Repository
	sessions domain.SessionRepository
	clock    *testutil.StubClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	logger := logging.Discard()
	accounts := repository.NewAccountRepository(filepath.Join(t.TempDir(), "users.json"), logger)
	clk := testutil.FixedClock()
	sessions := repository.NewSessionRepository(db)
	svc := NewService(accounts, sessions, time.Hour, logger,
		WithClock(clk), WithCost(bcrypt.MinCost))

	return &fixture{svc: svc, accounts: accounts, sessions: sessions, clock: clk}
}

func (f *fixture) addAccount(t *testing.T, username, password string, role account.Role) {
	t.Helper()
	hash, err := f.svc.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if err := f.accounts.Create(&account.Account{Username: username, PasswordHash: hash, Role: role}); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addAccount(t, "alice", "secret", account.RoleUser)

	t.Run("valid credentials", func(t *testing.T) {
		s, err := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.LoggedIn || s.Username != "alice" || s.Role != account.RoleUser || s.Token == "" {
			t.Errorf("unexpected session %+v", s)
		}
		if err := s.RequireLogin(); err != nil {
			t.Errorf("session should pass login guard: %v", err)
		}
		if err := s.RequireAdmin(); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("user session should fail admin guard, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "nope"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.svc.Login(ctx, domain.LoginRequest{Username: "mallory", Password: "secret"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestLoginUpgradesLegacyDigest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.accounts.Create(&account.Account{Username: "admin", PasswordHash: LegacyDigest("1234"), Role: account.RoleAdmin})

	if _, err := f.svc.Login(ctx, domain.LoginRequest{Username: "admin", Password: "1234"}); err != nil {
		t.Fatalf("legacy login failed: %v", err)
	}

	a, _ := f.accounts.Get("admin")
	if isLegacyDigest(a.PasswordHash) {
		t.Fatal("expected digest to be upgraded to bcrypt")
	}
	if ok, legacy := CheckPassword(a.PasswordHash, "1234"); !ok || legacy {
		t.Errorf("upgraded digest does not verify: ok=%v legacy=%v", ok, legacy)
	}
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addAccount(t, "alice", "secret", account.RoleUser)

	s, err := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.svc.ValidateToken(ctx, s.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected alice, got %q", got.Username)
	}

	f.clock.Advance(2 * time.Hour)
	if _, err := f.svc.ValidateToken(ctx, s.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected expired session to be rejected, got %v", err)
	}
}

func TestLogoutAndRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addAccount(t, "alice", "secret", account.RoleUser)

	s1, _ := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"})
	s2, _ := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"})

	if err := f.svc.Logout(ctx, s1.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.ValidateToken(ctx, s1.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected logged-out token to be rejected, got %v", err)
	}
	if err := f.svc.Logout(ctx, s1.Token); err != nil {
		t.Errorf("second logout should be a no-op, got %v", err)
	}

	n, err := f.svc.RevokeAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 revoked session, got %d", n)
	}
	if _, err := f.svc.ValidateToken(ctx, s2.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}
}

func TestLoginPurgesExpiredSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addAccount(t, "alice", "secret", account.RoleUser)

	stale, err := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.clock.Advance(2 * time.Hour)
	if _, err := f.svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.sessions.GetByToken(ctx, stale.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected the expired session row to be gone, got %v", err)
	}
}
