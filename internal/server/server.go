// Package server exposes the calculator registry as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/san-kum/physkit/internal/calc"
)

type Options struct {
	RateLimit float64
	Burst     int
}

type Server struct {
	registry *calc.Registry
	logger   *zap.Logger
	limiter  *IPRateLimiter
	router   *mux.Router
}

func New(registry *calc.Registry, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry: registry,
		logger:   logger,
		limiter:  NewIPRateLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(RequestLogger(s.logger))
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)

	api.HandleFunc("/calculators", s.handleList).Methods("GET")
	api.HandleFunc("/calculators/{name}", s.handleDescribe).Methods("GET")
	api.HandleFunc("/calc/{name}", s.handleCalc).Methods("POST")
	api.HandleFunc("/report/{name}", s.handleReport).Methods("POST")

	// A later subrouter route sharing the /api prefix clears an earlier
	// method mismatch, so known paths answer 405 explicitly.
	for _, path := range []string{"/calculators", "/calculators/{name}", "/calc/{name}", "/report/{name}"} {
		api.HandleFunc(path, s.handleMethodNotAllowed)
	}
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)
}

// Handler returns the router wrapped in CORS.
func (s *Server) Handler() http.Handler {
	return CORS(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
