package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/pwnedcheck/internal/corpus/backend"
	"github.com/iudanet/pwnedcheck/internal/server"
	"github.com/iudanet/pwnedcheck/internal/server/handlers"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	storeKind := flag.String("store", backend.SQLite, "Corpus store: bolt or sqlite")
	dbPath := flag.String("db", "corpus.db", "Path to corpus database")
	rateLimit := flag.Int("rate", 60, "Requests per minute per client IP, 0 disables limiting")
	trustProxy := flag.Bool("trust-proxy", false, "Key rate limit on X-Forwarded-For / X-Real-IP (only behind a trusted reverse proxy)")
	cacheTTL := flag.Duration("cache-ttl", handlers.DefaultCacheTTL, "Range cache TTL, 0 disables caching")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, *storeKind, *dbPath)
	if err != nil {
		logger.Error("Failed to open corpus", "store", *storeKind, "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close corpus", "error", err)
		}
	}()

	srv := server.New(server.Config{
		Addr:       *addr,
		Version:    Version,
		CacheTTL:   *cacheTTL,
		RateLimit:  *rateLimit,
		RateWindow: time.Minute,
		TrustProxy: *trustProxy,
	}, store, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1) //nolint:gocritic // store закрывается ОС при выходе
	}
}

func printVersion() {
	fmt.Printf("pwnedcheck range server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
