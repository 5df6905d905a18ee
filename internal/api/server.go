package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"subseek/internal/config"
	"subseek/internal/corpus"
	"subseek/internal/logging"
)

// Server serves corpus queries over HTTP.
type Server struct {
	store    *corpus.Store
	defaults config.Search
	logger   *slog.Logger
}

// NewServer wires the query server around an open store. The search section
// supplies the result and window defaults applied when a request omits them.
func NewServer(store *corpus.Store, defaults config.Search, logger *slog.Logger) *Server {
	return &Server{
		store:    store,
		defaults: defaults,
		logger:   logging.NewComponentLogger(logger, "api"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	group := router.Group("/api")
	group.GET("/search", s.handleSearch)
	group.GET("/context", s.handleContext)
	group.GET("/stats", s.handleStats)
	group.GET("/videos", s.handleVideos)

	return router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, bind string) error {
	srv := &http.Server{
		Addr:              bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("query server listening", logging.Args(logging.String("bind", bind))...)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		return err
	}
}
