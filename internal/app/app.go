package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/netutil"

	accountService "fileshare/internal/application/account"
	adminService "fileshare/internal/application/admin"
	authService "fileshare/internal/application/auth"
	fileService "fileshare/internal/application/file"
	statsService "fileshare/internal/application/stats"
	"fileshare/internal/delivery/http/handler"
	"fileshare/internal/delivery/http/router"
	"fileshare/internal/domain/file"
	"fileshare/internal/infrastructure/config"
	"fileshare/internal/infrastructure/database"
	"fileshare/internal/infrastructure/netinfo"
	"fileshare/internal/infrastructure/repository"
)

// App owns every long-lived dependency of the server. The caller must call
// Close when done.
type App struct {
	Settings *config.Settings
	Server   *config.ServerRecord
	Auth     authService.Service
	Accounts accountService.Service
	Files    fileService.Service
	Admin    adminService.Service
	Echo     *echo.Echo

	db     *database.DB
	logger *slog.Logger
}

// New opens the records and the session database, seeds the default admin
// and builds the HTTP router.
func New(ctx context.Context, settings *config.Settings, logger *slog.Logger) (*App, error) {
	for _, dir := range []string{settings.ShareDir, settings.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	server := config.OpenServer(settings.RecordPath(file.ConfigRecordName), logger)
	if err := server.EnsureOnDisk(); err != nil {
		logger.Warn("failed to write server config", "error", err)
	}

	db, err := database.New(settings.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating session database: %w", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(settings.RecordPath(file.UsersRecordName), logger)
	statsRepo := repository.NewStatsRepository(settings.RecordPath(file.StatsRecordName), logger)
	sessionRepo := repository.NewSessionRepository(db)
	fileRepo, err := repository.NewFilesystemRepository(settings.ShareDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening share directory: %w", err)
	}

	// Services
	authSvc := authService.NewService(accountRepo, sessionRepo, settings.SessionTTL, logger)
	accountSvc := accountService.NewService(accountRepo, authSvc, authSvc, nil, logger)
	tracker := statsService.NewService(statsRepo, nil, logger)
	fileSvc := fileService.NewService(fileRepo, tracker, func() fileService.Limits {
		c := server.Get()
		return fileService.Limits{MaxFileSize: c.MaxFileSize, AllowedExtensions: c.AllowedExtensions}
	}, logger)
	adminSvc := adminService.NewService(fileSvc, tracker, accountRepo, server, nil, logger)

	if _, err := accountSvc.EnsureDefaultAdmin(ctx, settings.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding admin account: %w", err)
	}

	secret, err := sessionSecret(settings.SessionSecret)
	if err != nil {
		db.Close()
		return nil, err
	}
	cookie := handler.NewTokenCookie(secret, settings.SessionTTL, false)

	// Handlers
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, cookie),
		File:    handler.NewFileHandler(fileSvc),
		Admin:   handler.NewAdminHandler(adminSvc),
		Account: handler.NewAccountHandler(accountSvc),
	}
	e := router.Setup(handlers, authSvc, router.Options{
		Logger:         logger,
		Cookie:         cookie,
		AllowedOrigins: settings.AllowedOrigins,
		LoginRateLimit: settings.LoginRateLimit,
		BehindProxy:    settings.BehindProxy,
	})

	return &App{
		Settings: settings,
		Server:   server,
		Auth:     authSvc,
		Accounts: accountSvc,
		Files:    fileSvc,
		Admin:    adminSvc,
		Echo:     e,
		db:       db,
		logger:   logger,
	}, nil
}

// sessionSecret returns the configured cookie key, or a random one that
// lives as long as the process.
func sessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating session secret: %w", err)
	}
	return b, nil
}

// Serve listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Server.Get()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Addr(), err)
	}
	if a.Settings.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.Settings.MaxConnections)
	}

	srv := &http.Server{
		Handler:           a.Echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.logger.Info("starting server",
		"addr", ln.Addr().String(),
		"share_dir", a.Settings.ShareDir,
		"data_dir", a.Settings.DataDir,
		"max_connections", a.Settings.MaxConnections,
	)
	if cfg.EnablePublicSharing && a.Settings.ShowQR {
		if url, err := netinfo.ShareURL(cfg.Host, cfg.Port, netinfo.LocalIPv4); err == nil {
			a.logger.Info("share on your network", "url", url, "qr", "/api/share/qr.png")
		} else {
			a.logger.Warn("could not determine LAN address", "error", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", "error", err)
		return err
	}
	a.logger.Info("server exited cleanly")
	return nil
}

// Close releases the session database.
func (a *App) Close() error {
	return a.db.Close()
}
