package ui

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"edaviz/adapters/echarts"
	"edaviz/app"
	"edaviz/internal/session"
	"edaviz/ui/middleware"
	"edaviz/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// Config holds page server settings
type Config struct {
	CookieName string
	SessionTTL time.Duration
	MaxBytes   int64
}

// Server is the single-page exploration UI
type Server struct {
	router    *gin.Engine
	templates *template.Template
	assets    fs.FS
	help      template.HTML

	explorer *app.ExplorerService
	sessions *session.Store
	renderer *echarts.Renderer
	config   Config
}

// NewServer creates a new web server instance
func NewServer(assets fs.FS, explorer *app.ExplorerService, sessions *session.Store, config Config) *Server {
	return &Server{
		router:   gin.Default(),
		assets:   assets,
		explorer: explorer,
		sessions: sessions,
		renderer: echarts.NewRenderer(),
		config:   config,
	}
}

// Initialize parses templates and registers middleware and routes
func (s *Server) Initialize() error {
	templatesFS, err := fs.Sub(s.assets, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates, err = parseTemplates(templatesFS)
	if err != nil {
		return err
	}
	s.help, err = renderMarkdown(templatesFS, fragments.Help)
	if err != nil {
		return err
	}
	log.Printf("[TemplateInit] Parsed %d templates", len(fragments.GetAllTemplatePaths()))

	if err := s.setupMiddleware(); err != nil {
		return err
	}
	s.setupRoutes()
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	page := s.router.Group("/", middleware.EnsureSession(s.sessions, s.config.CookieName, s.config.SessionTTL))
	page.GET("/", s.handleIndex)
	page.POST("/upload", middleware.LimitBody(s.config.MaxBytes), s.handleUpload)
	page.GET("/charts", s.handleCharts)
	page.POST("/reset", s.handleReset)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting EDA UI on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("Shutting down EDA UI")
		return srv.Shutdown(shutdownCtx)
	}
}
