package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	a, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := HashPassword("hunter2", bcrypt.MinCost)
	if a == b {
		t.Error("expected per-hash salts to produce different digests")
	}
	if !strings.HasPrefix(a, "$2") {
		t.Errorf("expected bcrypt digest, got %q", a)
	}

	ok, legacy := CheckPassword(a, "hunter2")
	if !ok || legacy {
		t.Errorf("CheckPassword() = %v, %v", ok, legacy)
	}
	if ok, _ := CheckPassword(a, "hunter3"); ok {
		t.Error("wrong password accepted")
	}
}

func TestCheckPasswordLegacy(t *testing.T) {
	digest := LegacyDigest("1234")
	if len(digest) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(digest))
	}

	ok, legacy := CheckPassword(digest, "1234")
	if !ok || !legacy {
		t.Errorf("CheckPassword(legacy) = %v, %v", ok, legacy)
	}
	if ok, _ := CheckPassword(strings.ToUpper(digest), "1234"); !ok {
		t.Error("upper-case legacy digest rejected")
	}
	if ok, _ := CheckPassword(digest, "12345"); ok {
		t.Error("wrong password accepted for legacy digest")
	}
}
