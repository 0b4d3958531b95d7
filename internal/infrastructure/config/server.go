package config

import (
	"log/slog"
	"net"
	"strconv"

	"fileshare/internal/domain/apperr"
	"fileshare/internal/infrastructure/jsonstore"
)

// Themes accepted by the UI
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalidTheme = apperr.New(apperr.ErrValidation, "theme must be light or dark")

// Server is the persisted server_config.json record
type Server struct {
	Host                string   `json:"host"`
	Port                int      `json:"port"`
	MaxFileSize         int64    `json:"max_file_size"`
	AllowedExtensions   []string `json:"allowed_extensions"`
	EnablePublicSharing bool     `json:"enable_public_sharing"`
	Theme               string   `json:"theme"`
}

// DefaultServer returns the configuration written on first boot.
func DefaultServer() Server {
	return Server{
		Host:        "0.0.0.0",
		Port:        50588,
		MaxFileSize: 5 << 30,
		AllowedExtensions: []string{
			"txt", "pdf", "png", "jpg", "jpeg", "gif",
			"mp4", "mp3", "doc", "docx", "xlsx",
		},
		EnablePublicSharing: true,
		Theme:               ThemeLight,
	}
}

// Addr is the listen address.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ValidTheme reports whether t is a known theme.
func ValidTheme(t string) bool {
	return t == ThemeLight || t == ThemeDark
}

// ServerRecord is the live, persisted server configuration.
type ServerRecord = jsonstore.Record[Server]

// OpenServer loads server_config.json. Missing keys take their defaults and
// out-of-range values are corrected in memory only; the file is written on
// first boot by EnsureOnDisk and otherwise only by Update.
func OpenServer(path string, logger *slog.Logger) *ServerRecord {
	def := DefaultServer()
	s := jsonstore.Load(path, def, logger)
	if s.Port <= 0 || s.Port > 65535 {
		s.Port = def.Port
	}
	if s.Host == "" {
		s.Host = def.Host
	}
	if !ValidTheme(s.Theme) {
		s.Theme = def.Theme
	}
	// An explicit [] allows every extension; null gets the defaults.
	if s.AllowedExtensions == nil {
		s.AllowedExtensions = def.AllowedExtensions
	}
	return jsonstore.New(path, s, logger)
}
