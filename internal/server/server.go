// Package server собирает HTTP сервер range API поверх локального корпуса.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/server/handlers"
	"github.com/iudanet/pwnedcheck/internal/server/metrics"
	"github.com/iudanet/pwnedcheck/internal/server/middleware"
	"github.com/iudanet/pwnedcheck/pkg/api"
)

// Config параметры сервера
type Config struct {
	Addr            string
	Version         string
	CacheTTL        time.Duration
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int  // запросов на IP за RateWindow, 0 отключает ограничение
	TrustProxy      bool // брать IP клиента из заголовков reverse proxy
}

// Server HTTP сервер range API
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	registry   *prometheus.Registry
	cfg        Config
}

// New создает сервер и регистрирует маршруты
func New(cfg Config, store corpus.RangeStore, logger *slog.Logger) *Server {
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry, "pwnedcheck")

	s := &Server{
		logger:   logger,
		registry: registry,
		cfg:      cfg,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(store, m),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(store corpus.RangeStore, m *metrics.Metrics) http.Handler {
	rangeHandler := handlers.NewRangeHandler(store, s.cfg.CacheTTL, m, s.logger)
	healthHandler := handlers.NewHealthHandler(store, s.cfg.Version, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.RangePath+"{prefix}", rangeHandler.Range)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// порядок: recovery -> request id -> logging -> metrics -> rate limit
	var h http.Handler = mux
	if s.cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(s.cfg.RateLimit, s.cfg.RateWindow, s.logger,
			middleware.WithTrustProxy(s.cfg.TrustProxy))
		h = middleware.RateLimitMiddleware(limiter)(h)
	}
	h = middleware.MetricsMiddleware(m)(h)
	h = middleware.LoggingWithSkip(s.logger, []string{"/health", "/metrics"})(h)
	h = middleware.RequestIDMiddleware(h)
	h = middleware.RecoveryMiddleware(s.logger)(h)
	return h
}

// Handler возвращает корневой обработчик со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и блокируется до отмены ctx,
// после чего корректно завершает активные запросы
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Range server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down range server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
