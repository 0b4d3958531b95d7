package admin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fileService "fileshare/internal/application/file"
	statsService "fileshare/internal/application/stats"
	"fileshare/internal/domain/account"
	"fileshare/internal/domain/auth"
	"fileshare/internal/domain/stats"
	"fileshare/internal/infrastructure/config"
	"fileshare/internal/infrastructure/logging"
	"fileshare/internal/infrastructure/repository"
	"fileshare/internal/testutil"
)

type fixture struct {
	svc     Service
	tracker statsService.Service
	server  *config.ServerRecord
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.Discard()
	dir := t.TempDir()

	repo, err := repository.NewFilesystemRepository(dir)
	if err != nil {
		t.Fatal(err)
	}
	tracker := statsService.NewService(
		repository.NewStatsRepository(filepath.Join(dir, "file_stats.json"), logger),
		testutil.FixedClock(), logger)
	server := config.OpenServer(filepath.Join(dir, "server_config.json"), logger)
	files := fileService.NewService(repo, tracker, func() fileService.Limits {
		c := server.Get()
		return fileService.Limits{MaxFileSize: c.MaxFileSize, AllowedExtensions: c.AllowedExtensions}
	}, logger)

	accounts := repository.NewAccountRepository(filepath.Join(dir, "users.json"), logger)
	for _, name := range []string{"admin", "bob"} {
		if err := accounts.Create(&account.Account{Username: name, PasswordHash: "x", Role: account.RoleUser}); err != nil {
			t.Fatal(err)
		}
	}

	lookup := func() (string, error) { return "192.168.1.20", nil }
	svc := NewService(files, tracker, accounts, server, lookup, logger)
	return &fixture{svc: svc, tracker: tracker, server: server, dir: dir}
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for name, body := range map[string]string{"a.txt": "12345", "b.pdf": "123"} {
		if err := os.WriteFile(filepath.Join(f.dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	f.tracker.Touch(ctx, "a.txt", stats.ActionDownload)
	f.tracker.Touch(ctx, "a.txt", stats.ActionDownload)

	ov, err := f.svc.Overview(ctx, testutil.AdminSession("admin"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.TotalFiles != 2 || ov.TotalDownloads != 2 || ov.TotalUsers != 2 {
		t.Errorf("unexpected overview %+v", ov)
	}
	if ov.VisibleBytes != 8 {
		t.Errorf("expected 8 visible bytes, got %d", ov.VisibleBytes)
	}
	// Records live beside the shared files and count towards the total.
	if ov.DiskUsageBytes <= ov.VisibleBytes {
		t.Errorf("expected total %d to include record files", ov.DiskUsageBytes)
	}

	if _, err := f.svc.Overview(ctx, testutil.UserSession("bob")); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := testutil.AdminSession("admin")

	if err := f.svc.SetTheme(ctx, admin, config.ThemeDark); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.svc.PublicConfig().Theme != config.ThemeDark {
		t.Error("expected dark theme in public config")
	}
	reloaded := config.OpenServer(f.server.Path(), logging.Discard())
	if reloaded.Get().Theme != config.ThemeDark {
		t.Error("expected theme to be persisted")
	}

	if err := f.svc.SetTheme(ctx, admin, "neon"); !errors.Is(err, config.ErrInvalidTheme) {
		t.Errorf("expected ErrInvalidTheme, got %v", err)
	}
	if err := f.svc.SetTheme(ctx, testutil.UserSession("bob"), config.ThemeLight); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestPublicConfig(t *testing.T) {
	f := newFixture(t)
	pc := f.svc.PublicConfig()
	if pc.MaxFileSizeHuman != "5.00 GB" || len(pc.AllowedExtensions) != 11 || !pc.EnablePublicSharing {
		t.Errorf("unexpected public config %+v", pc)
	}
}

func TestShareInfo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := testutil.UserSession("bob")

	info, err := f.svc.ShareInfo(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Enabled || info.URL != "http://192.168.1.20:50588" {
		t.Errorf("unexpected share info %+v", info)
	}
	if !strings.HasPrefix(info.QRCode, "data:image/png;base64,") {
		t.Errorf("expected QR data URI, got %.40q", info.QRCode)
	}

	f.server.Update(func(c *config.Server) error {
		c.EnablePublicSharing = false
		return nil
	})
	info, err = f.svc.ShareInfo(ctx, user)
	if err != nil || info.Enabled {
		t.Errorf("expected sharing disabled, got %+v (%v)", info, err)
	}
	if _, err := f.svc.ShareQRCode(ctx, user, 128); !errors.Is(err, ErrSharingDisabled) {
		t.Errorf("expected ErrSharingDisabled, got %v", err)
	}
}
