// Package ui serves the analytics engine over HTTP. The server holds one
// cached snapshot; every request recomputes the full result from it, so
// responses are deterministic for a given snapshot and query.
package ui

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"merchops/internal/dataset"
	"merchops/ports"
)

// Server is the HTTP surface of the analytics engine.
type Server struct {
	router *gin.Engine
	source ports.SnapshotSource
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot *dataset.Snapshot
}

// NewServer creates the server and registers its routes. Call Initialize
// before Run to load the first snapshot.
func NewServer(source ports.SnapshotSource, logger zerolog.Logger, ginMode string) *Server {
	gin.SetMode(ginMode)

	s := &Server{
		router: gin.New(),
		source: source,
		logger: logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/category-ops", s.handleAnalyze)
	api.GET("/category-ops/summary", s.handleSummary)
	api.GET("/category-ops/export", s.handleExport)
	api.POST("/refresh", s.handleRefresh)
}

// Initialize loads the first snapshot from the configured source.
func (s *Server) Initialize(ctx context.Context) error {
	return s.refresh(ctx)
}

// Run starts the HTTP listener. Blocks until the listener stops.
func (s *Server) Run(port string) error {
	s.logger.Info().Str("port", port).Msg("starting analytics server")
	return s.router.Run(":" + port)
}

func (s *Server) refresh(ctx context.Context) error {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info().
		Str("snapshot_id", string(snap.ID)).
		Int("facts", len(snap.Facts)).
		Int("skus", snap.SkuCount()).
		Int("channels", snap.ChannelCount()).
		Msg("snapshot loaded")
	return nil
}

func (s *Server) currentSnapshot() *dataset.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
