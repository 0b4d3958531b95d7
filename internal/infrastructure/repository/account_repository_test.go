package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fileshare/internal/domain/account"
)

func TestAccountRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewAccountRepository(path, discardLogger())

	alice := &account.Account{Username: "alice", PasswordHash: "h1", Role: account.RoleUser, Created: time.Now()}
	if err := repo.Create(alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(alice); !errors.Is(err, account.ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
	repo.Create(&account.Account{Username: "admin", PasswordHash: "h0", Role: account.RoleAdmin, Created: time.Now()})

	list, _ := repo.List()
	if len(list) != 2 || list[0].Username != "admin" || list[1].Username != "alice" {
		t.Errorf("expected sorted [admin alice], got %+v", list)
	}

	alice.PasswordHash = "h2"
	if err := repo.Update(alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := NewAccountRepository(path, discardLogger())
	got, err := reopened.Get("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PasswordHash != "h2" || got.Role != account.RoleUser {
		t.Errorf("unexpected account %+v", got)
	}

	if err := reopened.Delete("alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reopened.Delete("alice"); !errors.Is(err, account.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
	if n, _ := reopened.Count(); n != 1 {
		t.Errorf("expected 1 account left, got %d", n)
	}
}

func TestAccountRepository_LegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	legacy := `{"admin": {"password_hash": "abc", "role": "admin", "created": "2024-01-15T10:30:00.000001"}}`
	os.WriteFile(path, []byte(legacy), 0644)

	repo := NewAccountRepository(path, discardLogger())
	got, err := repo.Get("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != account.RoleAdmin || got.Created.Year() != 2024 {
		t.Errorf("unexpected account %+v", got)
	}
}
