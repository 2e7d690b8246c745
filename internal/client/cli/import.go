package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/corpus/backend"
)

// RunImport загружает ordered-by-hash дамп в локальный корпус.
// --file - читает дамп из stdin.
func (c *Cli) RunImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	storeKind := fs.String("store", backend.Bolt, "Corpus store: bolt or sqlite")
	dbPath := fs.String("db", "corpus.db", "Path to corpus database")
	dumpPath := fs.String("file", "", "Dump file (FULLSHA1:COUNT per line), - for stdin")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid import arguments: %w", err)
	}
	if *dumpPath == "" {
		return fmt.Errorf("missing dump file. Usage: pwnedcheck import --store bolt|sqlite --db PATH --file DUMP")
	}

	var dump io.Reader
	if *dumpPath == "-" {
		dump = os.Stdin
	} else {
		f, err := os.Open(*dumpPath)
		if err != nil {
			return fmt.Errorf("failed to open dump: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		dump = f
	}

	store, err := backend.Open(ctx, *storeKind, *dbPath)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			c.logger.Error("failed to close corpus", "error", err)
		}
	}()

	c.io.Printf("Importing into %s corpus %s...\n", *storeKind, *dbPath)

	stats, err := corpus.Import(ctx, store, dump, c.logger)
	if err != nil {
		return fmt.Errorf("import failed after %d prefixes: %w", stats.Prefixes, err)
	}

	c.io.Println("✓ Import completed")
	c.io.Printf("Prefixes: %d\n", stats.Prefixes)
	c.io.Printf("Entries:  %d\n", stats.Entries)
	if stats.Skipped > 0 {
		c.io.Printf("Skipped (malformed): %d\n", stats.Skipped)
	}

	return nil
}
