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

	"golang.org/x/time/rate"

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/client/api"
	"github.com/iudanet/pwnedcheck/internal/client/cli"
	"github.com/iudanet/pwnedcheck/internal/client/iocli"
	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/corpus/backend"
	"github.com/iudanet/pwnedcheck/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// APIURLEnv переопределяет --api
const APIURLEnv = "PWNEDCHECK_API_URL"

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	apiURL := flag.String("api", api.DefaultBaseURL, "Range API base URL")
	corpusPath := flag.String("corpus", "", "Path to local corpus (offline mode)")
	storeKind := flag.String("store", backend.Bolt, "Local corpus store: bolt or sqlite")
	timeout := flag.Duration("timeout", api.DefaultTimeout, "Per-request timeout")
	concurrency := flag.Int("concurrency", breach.DefaultConcurrency, "Parallel range requests")
	rps := flag.Float64("rps", 0, "Max range requests per second, 0 = unlimited")
	padding := flag.Bool("padding", false, "Request padded range responses")
	strict := flag.Bool("strict", false, "Fail on malformed range lines")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Usage = cli.PrintUsage
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(iocli.NewStdio(), logger)
	cfg := checkConfig{
		apiURL:      *apiURL,
		corpusPath:  *corpusPath,
		storeKind:   *storeKind,
		timeout:     *timeout,
		rps:         *rps,
		concurrency: *concurrency,
		padding:     *padding,
		strict:      *strict,
	}

	switch command {
	case "check":
		code, err := runCheck(ctx, c, logger, cfg, args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(code) //nolint:gocritic // контекст уже остановлен
	case "import":
		if err := c.RunImport(ctx, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}
}

// checkConfig глобальные флаги, влияющие на проверку
type checkConfig struct {
	apiURL      string
	corpusPath  string
	storeKind   string
	timeout     time.Duration
	rps         float64
	concurrency int
	padding     bool
	strict      bool
}

// runCheck собирает Lookup поверх API или локального корпуса и запускает check
func runCheck(ctx context.Context, c *cli.Cli, logger *slog.Logger, cfg checkConfig, args []string) (int, error) {
	var fetcher breach.RangeFetcher
	if cfg.corpusPath != "" {
		store, err := backend.Open(ctx, cfg.storeKind, cfg.corpusPath)
		if err != nil {
			return cli.ExitError, fmt.Errorf("failed to open corpus: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close corpus", "error", err)
			}
		}()
		fetcher = corpus.NewFetcher(store)
	} else {
		baseURL := cfg.apiURL
		if env := os.Getenv(APIURLEnv); env != "" {
			baseURL = env
		}
		if err := validation.ValidateBaseURL(baseURL); err != nil {
			return cli.ExitError, err
		}
		fetcher = api.NewClient(baseURL,
			api.WithTimeout(cfg.timeout),
			api.WithPadding(cfg.padding),
			api.WithUserAgent("pwnedcheck/"+Version),
		)
	}

	opts := []breach.Option{
		breach.WithLogger(logger),
		breach.WithConcurrency(cfg.concurrency),
	}
	if cfg.strict {
		opts = append(opts, breach.WithParsePolicy(breach.StrictParse))
	}
	if cfg.rps > 0 {
		opts = append(opts, breach.WithLimiter(rate.NewLimiter(rate.Limit(cfg.rps), 1)))
	}

	return c.RunCheck(ctx, breach.NewLookup(fetcher, opts...), args)
}

func printVersion() {
	fmt.Printf("pwnedcheck\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

