package admin

import (
	"context"
	"errors"
	"log/slog"

	fileService "fileshare/internal/application/file"
	statsService "fileshare/internal/application/stats"
	"fileshare/internal/domain/account"
	"fileshare/internal/domain/apperr"
	"fileshare/internal/domain/auth"
	"fileshare/internal/domain/file"
	"fileshare/internal/domain/stats"
	"fileshare/internal/infrastructure/config"
	"fileshare/internal/infrastructure/netinfo"
)

var ErrSharingDisabled = apperr.New(apperr.ErrNotFound, "public sharing is disabled")

// Overview is the admin dashboard summary
type Overview struct {
	TotalFiles     int    `json:"totalFiles"`
	TotalDownloads int64  `json:"totalDownloads"`
	TotalUsers     int    `json:"totalUsers"`
	DiskUsage      string `json:"diskUsage"`
	DiskUsageBytes int64  `json:"diskUsageBytes"`
	VisibleBytes   int64  `json:"visibleBytes"`
}

// PublicConfig is the part of the server config the UI may read
type PublicConfig struct {
	Theme               string   `json:"theme"`
	MaxFileSize         int64    `json:"max_file_size"`
	MaxFileSizeHuman    string   `json:"max_file_size_human"`
	AllowedExtensions   []string `json:"allowed_extensions"`
	EnablePublicSharing bool     `json:"enable_public_sharing"`
}

// ShareInfo tells LAN clients where to reach the server
type ShareInfo struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url,omitempty"`
	QRCode  string `json:"qrCode,omitempty"`
}

// Service defines the admin dashboard and server settings
type Service interface {
	Overview(ctx context.Context, s *auth.Session) (*Overview, error)
	FileStats(ctx context.Context, s *auth.Session) (map[string]stats.FileStat, error)
	SetTheme(ctx context.Context, s *auth.Session, theme string) error
	PublicConfig() PublicConfig
	ShareInfo(ctx context.Context, s *auth.Session) (*ShareInfo, error)
	ShareQRCode(ctx context.Context, s *auth.Session, size int) ([]byte, error)
}

type service struct {
	files    fileService.Service
	tracker  statsService.Service
	accounts account.Repository
	server   *config.ServerRecord
	lookupIP func() (string, error)
	logger   *slog.Logger
}

// NewService creates a new admin service. lookupIP resolves the LAN address
// when the server binds a wildcard host; nil uses netinfo.LocalIPv4.
func NewService(
	files fileService.Service,
	tracker statsService.Service,
	accounts account.Repository,
	server *config.ServerRecord,
	lookupIP func() (string, error),
	logger *slog.Logger,
) Service {
	if lookupIP == nil {
		lookupIP = netinfo.LocalIPv4
	}
	return &service{
		files:    files,
		tracker:  tracker,
		accounts: accounts,
		server:   server,
		lookupIP: lookupIP,
		logger:   logger,
	}
}

func (s *service) Overview(ctx context.Context, sess *auth.Session) (*Overview, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}

	entries, err := s.files.ListFiles(ctx, sess)
	if err != nil {
		return nil, err
	}
	usage, err := s.files.DiskUsage(ctx, sess)
	if err != nil {
		return nil, err
	}
	users, err := s.accounts.Count()
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalFiles:     len(entries),
		TotalDownloads: s.tracker.TotalDownloads(),
		TotalUsers:     users,
		DiskUsage:      file.FormatSize(usage.TotalBytes),
		DiskUsageBytes: usage.TotalBytes,
		VisibleBytes:   usage.VisibleBytes,
	}, nil
}

func (s *service) FileStats(ctx context.Context, sess *auth.Session) (map[string]stats.FileStat, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.tracker.All(), nil
}

func (s *service) SetTheme(ctx context.Context, sess *auth.Session, theme string) error {
	if err := sess.RequireAdmin(); err != nil {
		return err
	}
	if !config.ValidTheme(theme) {
		return config.ErrInvalidTheme
	}
	if err := s.server.Update(func(c *config.Server) error {
		c.Theme = theme
		return nil
	}); err != nil {
		return err
	}
	s.logger.Info("theme changed", "theme", theme, "user", sess.Username)
	return nil
}

func (s *service) PublicConfig() PublicConfig {
	var pc PublicConfig
	s.server.View(func(c config.Server) {
		pc = PublicConfig{
			Theme:               c.Theme,
			MaxFileSize:         c.MaxFileSize,
			MaxFileSizeHuman:    file.FormatSize(c.MaxFileSize),
			AllowedExtensions:   append([]string{}, c.AllowedExtensions...),
			EnablePublicSharing: c.EnablePublicSharing,
		}
	})
	return pc
}

func (s *service) shareURL() (string, error) {
	c := s.server.Get()
	if !c.EnablePublicSharing {
		return "", ErrSharingDisabled
	}
	return netinfo.ShareURL(c.Host, c.Port, s.lookupIP)
}

func (s *service) ShareInfo(ctx context.Context, sess *auth.Session) (*ShareInfo, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	url, err := s.shareURL()
	if errors.Is(err, ErrSharingDisabled) {
		return &ShareInfo{Enabled: false}, nil
	}
	if err != nil {
		return nil, err
	}

	qr, err := netinfo.QRCodeDataURI(url)
	if err != nil {
		s.logger.Warn("failed to render share QR code", "url", url, "error", err)
	}
	return &ShareInfo{Enabled: true, URL: url, QRCode: qr}, nil
}

func (s *service) ShareQRCode(ctx context.Context, sess *auth.Session, size int) ([]byte, error) {
	if err := sess.RequireLogin(); err != nil {
		return nil, err
	}
	url, err := s.shareURL()
	if err != nil {
		return nil, err
	}
	return netinfo.QRCodePNG(url, size)
}
