package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/cache"
	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	logger        *logrus.Logger
	predictor     domain.Predictor
	store         domain.SnapshotStore
	resultCache   *cache.ResultCache // optional distributed tier, may be nil
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance. store and resultCache may be
// nil; the corresponding endpoints degrade gracefully.
func NewServer(
	configManager domain.ConfigManager,
	logger *logrus.Logger,
	predictor domain.Predictor,
	store domain.SnapshotStore,
	resultCache *cache.ResultCache,
) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RateLimit(&cfg.RateLimit))

	server := &Server{
		configManager: configManager,
		logger:        logger,
		predictor:     predictor,
		store:         store,
		resultCache:   resultCache,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.WithField("addr", addr).Info("HTTP server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/predict", s.handlePredict)
		v1.GET("/predictions/:id", s.handleGetSnapshot)
		v1.GET("/predictions", s.handleListSnapshots)
		v1.GET("/references", s.handleReferences)
	}
}
