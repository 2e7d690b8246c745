// Package backend выбирает реализацию хранилища корпуса по имени.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/corpus/boltdb"
	"github.com/iudanet/pwnedcheck/internal/corpus/sqlite"
)

// Поддерживаемые хранилища
const (
	Bolt   = "bolt"
	SQLite = "sqlite"
)

// ErrUnknownBackend неизвестное имя хранилища
var ErrUnknownBackend = errors.New("unknown corpus store")

// Open открывает хранилище kind по пути path
func Open(ctx context.Context, kind, path string) (corpus.RangeStore, error) {
	if path == "" {
		return nil, fmt.Errorf("corpus database path is required")
	}

	switch kind {
	case Bolt:
		return boltdb.New(ctx, path)
	case SQLite:
		return sqlite.New(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownBackend, kind, Bolt, SQLite)
	}
}
