// Package api exposes the symptom-triage engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/history"
	"github.com/symptom-triage-server/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	config    *domain.Config
	analyzer  domain.Analyzer
	predictor domain.Predictor
	store     history.Store
	suggester Suggester
	logger    *logrus.Logger
	router    *gin.Engine
	server    *http.Server
}

// Suggester exposes the autocomplete symptom list.
type Suggester interface {
	Suggestions() []string
	SynonymCount() int
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *domain.Config, analyzer domain.Analyzer, suggester Suggester, predictor domain.Predictor, store history.Store, logger *logrus.Logger) (*Server, error) {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.AuditLogger())

	limiter, err := middleware.NewClientLimiter(
		cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, cfg.RateLimit.ClientCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create rate limiter: %w", err)
	}

	s := &Server{
		config:    cfg,
		analyzer:  analyzer,
		predictor: predictor,
		store:     store,
		suggester: suggester,
		logger:    logger,
		router:    router,
	}
	s.setupRoutes(limiter)
	return s, nil
}

// Router exposes the configured handler. Used by tests.
func (s *Server) Router() http.Handler { return s.router }

// Start starts the HTTP server and blocks until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
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
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes(limiter *middleware.ClientLimiter) {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		limited := v1.Group("")
		limited.Use(limiter.Middleware())
		limited.POST("/symptom-check", s.handleSymptomCheck)
		limited.POST("/symptom-followup", s.handleSymptomFollowup)

		v1.GET("/symptom-suggestions", s.handleSuggestions)
		v1.POST("/predict", s.handlePredict)
		v1.GET("/history", s.handleHistory)
		v1.GET("/history/:id", s.handleHistoryRecord)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
