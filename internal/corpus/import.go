package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/iudanet/pwnedcheck/internal/breach"
)

// ErrUnsortedInput дамп не упорядочен по хешу: префикс встретился повторно
var ErrUnsortedInput = errors.New("dump is not ordered by hash")

// ImportStats итог импорта
type ImportStats struct {
	Prefixes int64
	Entries  int64
	Skipped  int64
}

// Import загружает дамп корпуса в хранилище.
// Формат: одна запись FULLSHA1:COUNT на строку, строки упорядочены по хешу
// (так публикуется ordered-by-hash дамп). Записи группируются по префиксу,
// каждый диапазон записывается одним вызовом PutRange.
// Некорректные строки пропускаются и учитываются в ImportStats.Skipped.
func Import(ctx context.Context, store RangeStore, r io.Reader, logger *slog.Logger) (ImportStats, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		stats   ImportStats
		current string
		batch   []breach.Entry
	)
	flushed := make(map[string]struct{})

	flush := func() error {
		if current == "" {
			return nil
		}
		if err := store.PutRange(ctx, current, batch); err != nil {
			return fmt.Errorf("failed to store range %s: %w", current, err)
		}
		flushed[current] = struct{}{}
		stats.Prefixes++
		stats.Entries += int64(len(batch))
		batch = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%100000 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		digest, countText, ok := strings.Cut(line, ":")
		count, err := strconv.ParseInt(strings.TrimSpace(countText), 10, 64)
		if !ok || len(digest) != breach.DigestLen || !breach.IsPrefix(digest[:breach.PrefixLen]) ||
			!breach.IsSuffix(digest[breach.PrefixLen:]) || err != nil || count < 0 {
			stats.Skipped++
			logger.Debug("skipping malformed dump line", "line", lineNo)
			continue
		}

		prefix, suffix := breach.Split(strings.ToUpper(digest))
		if prefix != current {
			if _, seen := flushed[prefix]; seen {
				return stats, fmt.Errorf("%w: prefix %s at line %d", ErrUnsortedInput, prefix, lineNo)
			}
			if err := flush(); err != nil {
				return stats, err
			}
			current = prefix
		}
		batch = append(batch, breach.Entry{Suffix: suffix, Count: count})
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read dump: %w", err)
	}

	if err := flush(); err != nil {
		return stats, err
	}

	logger.Info("corpus import finished",
		"prefixes", stats.Prefixes,
		"entries", stats.Entries,
		"skipped", stats.Skipped,
	)

	return stats, nil
}
