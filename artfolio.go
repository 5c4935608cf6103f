// Package artfolio is a single-binary art portfolio engine built with Go,
// Echo, and SQLite. It serves a public gallery, blog, and page content as
// JSON plus raw image bytes, with a passphrase-gated admin API for CRUD on
// paintings, backgrounds, blog posts, and static page content. The
// single-page front end is the caller's own and lives in the static dir.
package artfolio

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central artfolio application. It wires together the store,
// catalog, handlers, and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Catalog *Catalog

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new artfolio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, catalog, middleware, and routes, then
// starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassphrase == "" {
		return fmt.Errorf("artfolio: AdminPassphrase is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("artfolio: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("artfolio: init store: %w", err)
	}
	a.Store = store
	a.Catalog = NewCatalog(store, a.Config.ListCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// The single-page front end and its assets.
	e.Static("/public", a.staticDir)
	e.GET("/", func(c echo.Context) error {
		return c.File(a.staticDir + "/index.html")
	})
	e.GET("/favicon.svg", func(c echo.Context) error {
		return c.File(a.staticDir + "/favicon.svg")
	})

	// Public API. Painting and post lists are visibility-filtered unless
	// the session is unlocked.
	e.GET("/api/paintings", a.handlePaintings)
	e.GET("/api/paintings/:id/:variant", a.handlePaintingImage)
	e.GET("/api/backgrounds", a.handleBackgrounds)
	e.GET("/api/backgrounds/:id/image", a.handleBackgroundImage)
	e.GET("/api/posts", a.handlePosts)
	e.GET("/api/content/:type", a.handleContent)

	// Admin gate.
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)
	e.GET("/admin/session", handleAdminSession)

	// Admin API.
	admin := e.Group("/admin/api", requireAdmin)
	admin.POST("/paintings", a.handlePaintingCreate)
	admin.PUT("/paintings/:id", a.handlePaintingUpdate)
	admin.DELETE("/paintings/:id", a.handlePaintingDelete)
	admin.POST("/backgrounds", a.handleBackgroundCreate)
	admin.DELETE("/backgrounds/:id", a.handleBackgroundDelete)
	admin.POST("/posts", a.handlePostCreate)
	admin.PUT("/posts/:id", a.handlePostUpdate)
	admin.DELETE("/posts/:id", a.handlePostDelete)
	admin.PUT("/content/:type", a.handleContentUpdate)
	admin.GET("/export", a.handleExport)
	admin.POST("/import", a.handleImport)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("artfolio: required environment variable %s is not set", key)
	}
	return v
}
