package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

// Settings holds process-level options read from the environment
type Settings struct {
	ShareDir       string
	DataDir        string
	LogDir         string
	LogLevel       string
	SessionSecret  string
	SessionTTL     time.Duration
	SessionDB      string
	MaxConnections int
	LoginRateLimit float64
	AdminPassword  string
	ShowQR         bool
	BehindProxy    bool
	AllowedOrigins []string
}

// Load reads Settings from the environment.
func Load() *Settings {
	shareDir := getEnv("SHARE_DIR", "./shared")
	return &Settings{
		ShareDir:       shareDir,
		DataDir:        getEnv("DATA_DIR", shareDir),
		LogDir:         getEnv("LOG_DIR", "./logs"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     time.Duration(getEnvAsInt64("SESSION_TTL_HOURS", 24)) * time.Hour,
		SessionDB:      getEnv("SESSION_DB", ":memory:"),
		MaxConnections: int(getEnvAsInt64("MAX_CONNECTIONS", 256)),
		LoginRateLimit: getEnvAsFloat("LOGIN_RATE_LIMIT", 5),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "1234"),
		ShowQR:         getEnvAsBool("SHOW_QR", true),
		BehindProxy:    getEnvAsBool("BEHIND_PROXY", false),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
	}
}

// RecordPath returns the location of a JSON record inside the data directory.
func (s *Settings) RecordPath(name string) string {
	return filepath.Join(s.DataDir, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
