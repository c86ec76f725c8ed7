package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/home"
	"github.com/jackzampolin/leaf/internal/metrics"
	"github.com/jackzampolin/leaf/internal/navigation"
	"github.com/jackzampolin/leaf/internal/server/endpoints"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// DefaultMetricsCapacity is how many render metrics the server keeps.
const DefaultMetricsCapacity = 4096

// Server is the leaf HTTP server. It hosts a single reading session over
// one document: the render workers start with the server and the reading
// position is saved on shutdown.
type Server struct {
	httpServer *http.Server
	controller *navigation.Controller
	configMgr  *config.Manager
	home       *home.Dir
	metrics    *metrics.Recorder
	document   svcctx.Document
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// DocumentPath is the document to open
	DocumentPath string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Home persists the reading position when set
	Home *home.Dir
	// RenderTimeout bounds how long navigation calls wait for a frame
	RenderTimeout time.Duration
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New opens the document and builds the navigation controller. Rendering
// starts with Start.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	settings := cfg.ConfigManager.Get()
	src, err := document.Open(cfg.DocumentPath, settings.SourceOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	rec := metrics.NewRecorder(DefaultMetricsCapacity)
	ctrl, err := navigation.New(navigation.SettingsConfig(src, settings, rec, cfg.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	s := &Server{
		controller: ctrl,
		configMgr:  cfg.ConfigManager,
		home:       cfg.Home,
		metrics:    rec,
		document: svcctx.Document{
			Path: cfg.DocumentPath,
			Key:  home.DocumentKey(cfg.DocumentPath),
		},
		logger: cfg.Logger,
	}

	// Viewport and layout edits in the config file reach the controller
	// as host change notifications.
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		if err := ctrl.ApplySettings(c); err != nil {
			cfg.Logger.Warn("failed to apply config change", "error", err)
			return
		}
		cfg.Logger.Info("layout settings applied from config",
			"viewport", ctrl.PageLayoutManager().Viewport(),
			"single_page", c.Layout.SinglePage,
			"zoom", c.Layout.Zoom)
	})

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{RenderTimeout: cfg.RenderTimeout}) {
		s.endpointRegistry.Register(ep)
	}

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the render workers and the HTTP server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.controller.Start(ctx); err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to start renderer: %w", err)
	}
	s.restorePosition()

	s.mu.Lock()
	s.services = &svcctx.Services{
		Controller:    s.controller,
		ConfigManager: s.configMgr,
		Metrics:       s.metrics,
		Logger:        s.logger,
		Home:          s.home,
		Document:      s.document,
	}
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr, "document", s.document.Path)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown stops the HTTP server, saves the reading position and stops
// rendering.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.savePosition()
	s.controller.Close()
	if err := document.Close(s.controller.PageLayoutManager().Source()); err != nil {
		s.logger.Warn("failed to close document", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

// restorePosition moves the cursor to the saved position. The saved
// cursor is reused only when the layout still has the same shape.
func (s *Server) restorePosition() {
	if s.home == nil {
		return
	}
	pos, ok, err := s.home.LoadPosition(s.document.Key)
	if err != nil {
		s.logger.Warn("failed to load reading position", "error", err)
		return
	}
	if !ok {
		return
	}

	mgr := s.controller.PageLayoutManager()
	if pos.SinglePage == mgr.IsSinglePageMode() && pos.Screens == mgr.Len() {
		_, err = s.controller.Seek(pos.Cursor)
	} else {
		_, err = s.controller.GoToPage(pos.Page)
	}
	if err != nil {
		s.logger.Warn("saved reading position no longer applies", "page", pos.Page, "cursor", pos.Cursor, "error", err)
		return
	}
	s.logger.Info("restored reading position", "page", s.controller.CurrentPage(), "cursor", s.controller.Cursor())
}

func (s *Server) savePosition() {
	if s.home == nil || s.controller.PageCount() == 0 {
		return
	}
	mgr := s.controller.PageLayoutManager()
	pos := home.Position{
		Page:       s.controller.CurrentPage(),
		Cursor:     s.controller.Cursor(),
		Screens:    mgr.Len(),
		SinglePage: mgr.IsSinglePageMode(),
	}
	if err := s.home.SavePosition(s.document.Key, pos); err != nil {
		s.logger.Warn("failed to save reading position", "error", err)
	}
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.services = nil
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Controller returns the navigation controller.
func (s *Server) Controller() *navigation.Controller {
	return s.controller
}

// Metrics returns the render metrics recorder.
func (s *Server) Metrics() *metrics.Recorder {
	return s.metrics
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc := s.currentServices(); svc != nil {
			ctx = svcctx.WithServices(ctx, svc)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the renderer is running.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ControllerFrom(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
