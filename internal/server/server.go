// Package server runs the shiftscan HTTP API: scan uploads, parse jobs and
// stored results, backed by the sqlite store and the in-process job workers.
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

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/jobs"
	"github.com/shiftscan/shiftscan/internal/ocr"
	"github.com/shiftscan/shiftscan/internal/server/endpoints"
	"github.com/shiftscan/shiftscan/internal/store"
	"github.com/shiftscan/shiftscan/internal/svcctx"
)

// Server is the main shiftscan HTTP server. It owns the store and job worker
// lifecycle: both come up on Start and shut down when the context ends.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	homeDir    *home.Dir
	recognizer ocr.Recognizer
	logger     *slog.Logger
	workers    int

	st         *store.Store
	jobManager *jobs.Manager

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
	// Home is the shiftscan home directory.
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support.
	ConfigManager *config.Manager
	// Recognizer overrides the config-selected OCR engine when non-nil.
	Recognizer ocr.Recognizer
	// Workers is the parse worker count (default from config).
	Workers int
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Home == nil {
		return nil, errors.New("home directory is required")
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := cfg.ConfigManager.Get()
	if cfg.Host == "" {
		cfg.Host = appCfg.Server.Host
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = appCfg.Server.Port
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = appCfg.Server.Workers
	}

	recognizer := cfg.Recognizer
	if recognizer == nil {
		var err error
		recognizer, err = BuildRecognizer(appCfg)
		if err != nil {
			return nil, err
		}
	}

	s := &Server{
		configMgr:  cfg.ConfigManager,
		homeDir:    cfg.Home,
		recognizer: recognizer,
		logger:     cfg.Logger,
		workers:    cfg.Workers,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// BuildRecognizer constructs the OCR engine the config selects.
func BuildRecognizer(cfg *config.Config) (ocr.Recognizer, error) {
	switch cfg.OCR.Engine {
	case "", ocr.TesseractName:
		return ocr.NewTesseract(ocr.TesseractConfig{
			Language:    cfg.OCR.Language,
			PageSegMode: cfg.OCR.PageSegMode,
		}), nil
	case ocr.VisionName:
		return ocr.NewVision(ocr.VisionConfig{
			APIKey: cfg.VisionAPIKey(),
			Model:  cfg.OCR.Vision.Model,
		})
	default:
		return nil, fmt.Errorf("unknown ocr engine: %q", cfg.OCR.Engine)
	}
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.homeDir.EnsureExists(); err != nil {
		s.setNotRunning()
		return err
	}

	st, err := store.Open(s.homeDir.DatabasePath())
	if err != nil {
		s.setNotRunning()
		return err
	}
	s.st = st

	// Job workers run until the server context ends.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	s.jobManager = jobs.NewManager(&jobs.Pipeline{
		Recognizer: s.recognizer,
		Config:     s.configMgr,
		Home:       s.homeDir,
		Store:      st,
		Logger:     s.logger,
	}, s.workers)
	s.jobManager.Start(jobCtx)

	s.services = &svcctx.Services{
		ConfigManager: s.configMgr,
		Recognizer:    s.recognizer,
		JobManager:    s.jobManager,
		Store:         st,
		Home:          s.homeDir,
		Logger:        s.logger,
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr, "engine", s.recognizer.Name())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown(cancelJobs)
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown(cancelJobs)
}

// shutdown stops the HTTP server, drains the job workers and closes the
// store.
func (s *Server) shutdown(cancelJobs context.CancelFunc) error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	cancelJobs()
	s.jobManager.Wait()

	if err := s.st.Close(); err != nil {
		s.logger.Error("store close error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// JobManager returns the job manager.
// Returns nil if the server hasn't started yet.
func (s *Server) JobManager() *jobs.Manager {
	return s.jobManager
}

// Store returns the parse result store.
// Returns nil if the server hasn't started yet.
func (s *Server) Store() *store.Store {
	return s.st
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the store or job workers aren't ready.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.st == nil || s.jobManager == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
