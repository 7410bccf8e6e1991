// Package server provides the local JSON API behind the scouting dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/server/ratelimit"
	"github.com/jonathan/fm-scout/internal/types"
	corslib "github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// SquadReviewer produces AI squad reviews. *report.Reviewer implements it.
type SquadReviewer interface {
	Review(ctx context.Context, club string, table *types.Table) (*report.Review, error)
	ReviewText(ctx context.Context, club string, table *types.Table) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	router      chi.Router
	session     *Session
	reviewer    SquadReviewer
	club        string
	topN        int
	freeAgent   time.Time
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      *logrus.Entry
}

// Config holds server configuration
type Config struct {
	Port        int
	CORSOrigins []string
	// Club is the default club name for squad reviews.
	Club string
	// TopN is the default length of squad top lists.
	TopN int
	// FreeAgentDate is passed to the normalizer for uploaded exports.
	FreeAgentDate time.Time
	// RateLimit nil means ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// Reviewer nil disables the review endpoint.
	Reviewer SquadReviewer
	Logger   *logrus.Entry
}

// New creates a new server instance
func New(cfg Config, session *Session) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logrus.WithField("component", "server")
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		session:     session,
		reviewer:    cfg.Reviewer,
		club:        cfg.Club,
		topN:        cfg.TopN,
		freeAgent:   cfg.FreeAgentDate,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		validate:    validator.New(),
		logger:      cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
	}).Handler)
	r.Use(s.withRateLimit)

	r.Get("/health", s.handleHealth)
	r.Put("/tables/{table}", s.handleUploadTable)

	r.Route("/players", func(r chi.Router) {
		r.Get("/", s.handleListPlayers)
		r.Post("/filter", s.handleFilterPlayers)
		r.Get("/{name}", s.handleGetPlayer)
	})
	r.Get("/facets", s.handleFacets)
	r.Get("/presets", s.handlePresets)
	r.Get("/roles", s.handleRoles)
	r.Post("/rank", s.handleRank)
	r.Post("/similar", s.handleSimilar)

	r.Route("/squad", func(r chi.Router) {
		r.Get("/summary", s.handleSquadSummary)
		r.Post("/review", s.handleSquadReview)
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Squad reviews wait on the model
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until ctx is cancelled or the process is interrupted, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("Server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("Request completed")
	})
}

// extractClientID extracts the client identifier from the request.
// RealIP has already replaced RemoteAddr with the forwarded address when present.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds()+0.5)))
	}

	s.logger.WithFields(logrus.Fields{
		"limit":    info.Limit,
		"reset_at": info.ResetTime.Format(time.RFC3339),
	}).Warn("Rate limit exceeded")

	s.errorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Please try again later.")
}
