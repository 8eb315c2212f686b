// Package api exposes the analysis pipeline and reference dataset over
// HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/chiku1101/druggs/internal/application"
	"github.com/chiku1101/druggs/internal/ports"
)

// Server is the HTTP presentation layer over the analyzer and the
// reference store.
type Server struct {
	analyzer *application.Analyzer
	store    ports.ReferenceStore
	logger   *logrus.Logger
	http     *http.Server
}

// NewServer builds the server with its routes registered.
func NewServer(address string, analyzer *application.Analyzer, store ports.ReferenceStore, logger *logrus.Logger) *Server {
	server := &Server{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), cors(), requestLogger(logger))

	router.GET("/health", server.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/analyze", server.handleAnalyze)
		apiGroup.GET("/medicines/search", server.handleMedicineSearch)
		apiGroup.GET("/medicines/by-condition", server.handleMedicinesByCondition)
		apiGroup.GET("/suggestions/drugs", server.handleDrugSuggestions)
		apiGroup.GET("/suggestions/conditions", server.handleConditionSuggestions)
	}

	server.http = &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", s.http.Addr).Info("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
