// Package corpus хранит локальную копию корпуса утечек, разбитую на
// диапазоны по 5-символьному префиксу SHA-1.
package corpus

import (
	"context"
	"errors"

	"github.com/iudanet/pwnedcheck/internal/breach"
)

var (
	// ErrPrefixNotFound диапазон для префикса отсутствует в хранилище
	ErrPrefixNotFound = errors.New("range prefix not found")

	// ErrInvalidPrefix префикс не является 5 hex символами
	ErrInvalidPrefix = errors.New("invalid range prefix")

	// ErrStorageClosed хранилище закрыто
	ErrStorageClosed = errors.New("storage is closed")
)

// Stats сводка по содержимому хранилища
type Stats struct {
	Prefixes int64 `json:"prefixes"`
	Entries  int64 `json:"entries"`
}

//go:generate moq -out store_mock.go . RangeStore

// RangeStore defines interface for range persistence
type RangeStore interface {
	// PutRange replaces all entries stored for prefix.
	// Empty entries remove the range: Range then reports ErrPrefixNotFound
	PutRange(ctx context.Context, prefix string, entries []breach.Entry) error

	// Range returns entries for prefix ordered by suffix
	// Returns ErrPrefixNotFound if nothing is stored for prefix
	Range(ctx context.Context, prefix string) ([]breach.Entry, error)

	// Stats returns number of stored prefixes and entries
	Stats(ctx context.Context) (Stats, error)

	Close() error
}
