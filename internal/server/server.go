// Package server provides the HTTP API for the swipe engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/config"
	"github.com/andrea/gig-matcher/internal/feed"
	"github.com/andrea/gig-matcher/internal/server/ratelimit"
	"github.com/andrea/gig-matcher/internal/store"
)

// Backend bundles the persistence collaborators the engine calls.
type Backend struct {
	Source   store.JobSource
	Profiles store.ProfileSource
	Swipes   store.SwipeStore
	Cache    store.FeedCache // nil disables feed caching
}

// Server hosts the swipe-session HTTP API.
type Server struct {
	httpServer  *http.Server
	backend     Backend
	sessions    *SessionRegistry
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
}

// New creates a server instance over an already-connected backend.
func New(cfg *config.Config, backend Backend, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		backend: backend,
		log:     log,
	}
	s.sessions = NewSessionRegistry(backend, feed.NewCoordinator(), log, feed.ManagerOptions{
		PageSize:           cfg.FeedPageSize,
		ReplenishThreshold: cfg.ReplenishThreshold,
	})
	s.rateLimiter = ratelimit.NewLimiter(nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", s.handleFeed)
	mux.HandleFunc("POST /feed/retry", s.handleFeedRetry)
	mux.HandleFunc("POST /swipe", s.handleSwipe)
	mux.HandleFunc("POST /rewind", s.handleRewind)
	mux.HandleFunc("GET /limit", s.handleLimit)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.rateLimitMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully,
// flushing any queued swipe decisions first.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		s.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s.sessions.FlushAll()
	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// rateLimitMiddleware applies per-client token-bucket limiting to every
// endpoint except the health check.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		clientID := r.URL.Query().Get("user_id")
		if clientID == "" {
			clientID = r.RemoteAddr
		}
		if allowed, info := s.rateLimiter.Allow(clientID); !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
			s.errorResponse(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
