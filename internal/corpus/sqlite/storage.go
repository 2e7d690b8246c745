package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/corpus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Storage represents SQLite range storage
type Storage struct {
	db *sql.DB
}

var _ corpus.RangeStore = (*Storage)(nil)

// New creates a new SQLite storage instance
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем соединение с БД
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	storage := &Storage{db: db}

	// Запускаем миграции
	if err := storage.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// PutRange заменяет диапазон для префикса в одной транзакции.
// Пустой entries удаляет диапазон
func (s *Storage) PutRange(ctx context.Context, prefix string, entries []breach.Entry) error {
	prefix = strings.ToUpper(prefix)
	if !breach.IsPrefix(prefix) {
		return fmt.Errorf("%w: %q", corpus.ErrInvalidPrefix, prefix)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hashes WHERE prefix = ?`, prefix); err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hashes (prefix, suffix, count)
		VALUES (?, ?, ?)
		ON CONFLICT (prefix, suffix) DO UPDATE SET count = excluded.count
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, prefix, strings.ToUpper(e.Suffix), e.Count); err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit range: %w", err)
	}

	return nil
}

// Range возвращает записи диапазона, упорядоченные по суффиксу
func (s *Storage) Range(ctx context.Context, prefix string) ([]breach.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT suffix, count
		FROM hashes
		WHERE prefix = ?
		ORDER BY suffix
	`, strings.ToUpper(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query range: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []breach.Entry
	for rows.Next() {
		var e breach.Entry
		if err := rows.Scan(&e.Suffix, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate range: %w", err)
	}

	if len(entries) == 0 {
		return nil, corpus.ErrPrefixNotFound
	}

	return entries, nil
}

// Stats считает количество диапазонов и записей
func (s *Storage) Stats(ctx context.Context) (corpus.Stats, error) {
	var stats corpus.Stats

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT prefix), COUNT(*)
		FROM hashes
	`).Scan(&stats.Prefixes, &stats.Entries)
	if err != nil {
		return corpus.Stats{}, fmt.Errorf("failed to count entries: %w", err)
	}

	return stats, nil
}
