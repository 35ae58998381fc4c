// Package api exposes the string store over HTTP/JSON.
//
// Routes:
//
//	POST   /strings                                  analyze and store a value
//	GET    /strings                                  list with structured filters
//	GET    /strings/filter-by-natural-language       list with a free-text query
//	GET    /strings/{value}                          fetch one record
//	DELETE /strings/{value}                          remove one record
//	GET    /healthz                                  readiness and record count
//
// Every error response is a JSON object with an "error" message.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/roach88/strand/internal/model"
)

// Store is the persistence surface the handlers need.
// *store.Store satisfies it.
type Store interface {
	Insert(ctx context.Context, rec model.Record) error
	GetByValue(ctx context.Context, value string) (model.Record, error)
	DeleteByValue(ctx context.Context, value string) (bool, error)
	List(ctx context.Context, filters model.FilterSet) ([]model.Record, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Server routes HTTP requests to the store.
type Server struct {
	store           Store
	logger          *slog.Logger
	clock           Clock
	ids             IDGenerator
	shutdownTimeout time.Duration
	handler         http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock overrides the clock used for created_at.
func WithClock(clock Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithIDGenerator overrides how request ids are minted.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Server) { s.ids = ids }
}

// WithShutdownTimeout bounds how long Serve waits for in-flight requests
// once its context is cancelled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// NewServer creates a Server backed by store.
func NewServer(store Store, opts ...Option) *Server {
	s := &Server{
		store:           store,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:           systemClock{},
		ids:             UUIDv7Generator{},
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.applyMiddleware(mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	s.logger.Info("http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

// ErrListen wraps failures to bind the listen address.
var ErrListen = errors.New("listen")

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrListen, addr, err)
	}
	return s.Serve(ctx, ln)
}
