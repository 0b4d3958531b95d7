package database

import (
	"testing"

	"fileshare/internal/infrastructure/database/migrations"
)

func TestMigrate(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if v, _, err := migrations.Version(db.DB); err != nil || v != 0 {
		t.Fatalf("fresh database: version=%d err=%v", v, err)
	}

	if err := db.Migrate(); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	// Second run must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	v, dirty, err := migrations.Version(db.DB)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 1 || dirty {
		t.Errorf("expected clean version 1, got %d (dirty=%v)", v, dirty)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		t.Errorf("sessions table missing: %v", err)
	}
}
