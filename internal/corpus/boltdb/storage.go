package boltdb

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/corpus"
)

var (
	// BoltDB bucket names
	bucketRanges = []byte("ranges")
)

// Storage represents BoltDB range storage.
// Каждый диапазон хранится одним значением в формате range-ответа.
type Storage struct {
	db *bbolt.DB
}

var _ corpus.RangeStore = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRanges); err != nil {
			return fmt.Errorf("failed to create ranges bucket: %w", err)
		}
		return nil
	})
}

// PutRange заменяет диапазон для префикса.
// Пустой entries удаляет диапазон
func (s *Storage) PutRange(ctx context.Context, prefix string, entries []breach.Entry) error {
	prefix = strings.ToUpper(prefix)
	if !breach.IsPrefix(prefix) {
		return fmt.Errorf("%w: %q", corpus.ErrInvalidPrefix, prefix)
	}

	var buf bytes.Buffer
	if err := breach.FormatRange(&buf, entries); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRanges)
		if bucket == nil {
			return fmt.Errorf("ranges bucket not found")
		}

		if len(entries) == 0 {
			if err := bucket.Delete([]byte(prefix)); err != nil {
				return fmt.Errorf("failed to delete range: %w", err)
			}
			return nil
		}

		if err := bucket.Put([]byte(prefix), buf.Bytes()); err != nil {
			return fmt.Errorf("failed to save range: %w", err)
		}

		return nil
	})
}

// Range возвращает записи диапазона
func (s *Storage) Range(ctx context.Context, prefix string) ([]breach.Entry, error) {
	prefix = strings.ToUpper(prefix)

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRanges)
		if bucket == nil {
			return fmt.Errorf("ranges bucket not found")
		}

		v := bucket.Get([]byte(prefix))
		if v == nil {
			return corpus.ErrPrefixNotFound
		}

		// значение валидно только внутри транзакции
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	table, _, err := breach.ParseRange(bytes.NewReader(data), breach.StrictParse)
	if err != nil {
		return nil, fmt.Errorf("corrupted range %s: %w", prefix, err)
	}

	return sortedEntries(table), nil
}

// Stats считает количество диапазонов и записей
func (s *Storage) Stats(ctx context.Context) (corpus.Stats, error) {
	var stats corpus.Stats

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRanges)
		if bucket == nil {
			return fmt.Errorf("ranges bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			stats.Prefixes++
			stats.Entries += int64(bytes.Count(v, []byte("\n")))
			return nil
		})
	})
	if err != nil {
		return corpus.Stats{}, err
	}

	return stats, nil
}

func sortedEntries(table map[string]int64) []breach.Entry {
	entries := make([]breach.Entry, 0, len(table))
	for suffix, count := range table {
		entries = append(entries, breach.Entry{Suffix: suffix, Count: count})
	}
	slices.SortFunc(entries, func(a, b breach.Entry) int {
		return strings.Compare(a.Suffix, b.Suffix)
	})
	return entries
}
