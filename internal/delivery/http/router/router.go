package router

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"fileshare/internal/application/auth"
	"fileshare/internal/delivery/http/handler"
	"fileshare/internal/delivery/http/middleware"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth    *handler.AuthHandler
	File    *handler.FileHandler
	Admin   *handler.AdminHandler
	Account *handler.AccountHandler
}

// Options tunes the middleware stack
type Options struct {
	Logger         *slog.Logger
	Cookie         *handler.TokenCookie
	AllowedOrigins []string
	LoginRateLimit float64
	BehindProxy    bool
}

// Setup configures all routes for the application
func Setup(handlers Handlers, authService auth.Service, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	if opts.BehindProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	// Global middleware
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.CORS(opts.AllowedOrigins))
	e.Use(middleware.RequestLogger(opts.Logger))

	authRequired := middleware.Auth(authService, opts.Cookie)
	adminOnly := middleware.RequireAdmin()

	// Public
	e.GET("/health", handlers.Admin.Health)
	e.GET("/api/config", handlers.Admin.Config)
	e.POST("/api/auth/login", handlers.Auth.Login, middleware.LoginLimiter(opts.LoginRateLimit, 5))
	e.POST("/api/auth/logout", handlers.Auth.Logout)

	api := e.Group("/api", authRequired)
	api.GET("/auth/me", handlers.Auth.Me)
	api.GET("/share", handlers.Admin.Share)
	api.GET("/share/qr.png", handlers.Admin.ShareQRCode)

	// Files
	api.GET("/files", handlers.File.List)
	api.POST("/files", handlers.File.Upload)
	api.POST("/files/bulk-delete", handlers.File.BulkDelete)
	api.POST("/files/bulk-download", handlers.File.BulkDownload)
	api.GET("/files/:name", handlers.File.Download)
	api.GET("/files/:name/raw", handlers.File.Raw)
	api.GET("/files/:name/thumbnail", handlers.File.Thumbnail)
	api.POST("/files/:name/stats", handlers.File.RecordStat)
	api.DELETE("/files/:name", handlers.File.Delete)

	// Admin
	adm := api.Group("/admin", adminOnly)
	adm.GET("/stats", handlers.Admin.Stats)
	adm.GET("/file-stats", handlers.Admin.FileStats)
	adm.PUT("/theme", handlers.Admin.SetTheme)
	adm.GET("/accounts", handlers.Account.List)
	adm.POST("/accounts", handlers.Account.Create)
	adm.DELETE("/accounts/:username", handlers.Account.Delete)
	adm.PUT("/accounts/:username/password", handlers.Account.SetPassword)

	return e
}
