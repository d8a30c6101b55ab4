package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/database"
	"github.com/handiism/albumlinks/internal/model"
)

// ServiceName is reported by /health.
const ServiceName = "albumlinks"

// AlbumStore is the data the handlers serve. *store.Store implements it.
type AlbumStore interface {
	ListAlbums(ctx context.Context, page, limit int) ([]model.AlbumSummary, int, error)
	Search(ctx context.Context, query string) ([]model.AlbumSummary, error)
	GetAlbum(ctx context.Context, artist, album string) (*model.AlbumDetail, error)
}

// Dependencies are shared by all handlers.
type Dependencies struct {
	Store AlbumStore

	// DB is only used for health checks. May be nil.
	DB *database.DB

	Logger  *slog.Logger
	Version string
}

// Server represents the HTTP server.
type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	settings     config.ServerSettings
	deps         *Dependencies
	rateLimiters *sync.Map
	cleanupOnce  sync.Once
	cleanupStop  chan struct{}
	stopOnce     sync.Once
}

// NewServer creates a new HTTP server.
func NewServer(settings config.ServerSettings, deps *Dependencies) *Server {
	if deps == nil {
		deps = &Dependencies{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		engine:       engine,
		settings:     settings,
		deps:         deps,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           settings.Address(),
			Handler:        engine,
			ReadTimeout:    settings.ReadTimeout,
			WriteTimeout:   settings.WriteTimeout,
			IdleTimeout:    settings.ReadTimeout,
			MaxHeaderBytes: 1 << 20,
		},
	}
}

// Engine returns the gin engine for testing.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes.
func (s *Server) Initialize() error {
	if s.deps.Store == nil {
		return errors.New("server: no album store configured")
	}

	s.engine.Use(RequestID())
	s.engine.Use(gin.Logger())
	s.engine.Use(CORS())

	RegisterRoutes(s.engine, s.deps, s.rateLimit())
	return nil
}

func (s *Server) rateLimit() gin.HandlerFunc {
	rps := s.settings.RateLimitRPS
	burst := s.settings.RateLimitBurst
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = rps * 2
	}
	return PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupOnce, rps, burst)
}

// Start listens until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.deps.Logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.cleanupStop) })
	return s.httpServer.Shutdown(ctx)
}
