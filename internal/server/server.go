// Package server provides the HTTP API for ShopSync.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/config"
	"github.com/shopsync/shopsync/internal/models"
)

// Searcher runs the aggregation pipeline for one query.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) models.SearchResponse
}

// Comparer deep-compares selected products.
type Comparer interface {
	Compare(ctx context.Context, req models.CompareRequest) models.CompareResponse
}

// Assistant answers chat messages.
type Assistant interface {
	Process(ctx context.Context, req models.ChatRequest) models.ChatResponse
}

// Server is the HTTP server for the ShopSync API.
type Server struct {
	searcher  Searcher
	comparer  Comparer
	assistant Assistant
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	searcher Searcher,
	comparer Comparer,
	assistant Assistant,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		searcher:  searcher,
		comparer:  comparer,
		assistant: assistant,
		config:    cfg,
		logger:    logger,
	}
}

// Router assembles the route tree. Split from Start so tests can drive the
// handlers through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	lmt := tollbooth.NewLimiter(s.config.RateLimit, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(rateLimit(lmt)).Get("/search", s.handleSearch)
		r.Get("/search/export", s.handleExport)
		r.Post("/chat", s.handleChat)
		r.Post("/compare", s.handleCompare)
	})
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func rateLimit(lmt *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}
