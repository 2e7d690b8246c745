package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/pwnedcheck/internal/breach"
)

// Fetcher отдает диапазоны из локального хранилища в том же текстовом
// формате, что и удаленный сервис, поэтому офлайн-проверка идет
// через тот же конвейер breach.Lookup.
type Fetcher struct {
	Store RangeStore
}

// NewFetcher создает Fetcher поверх хранилища
func NewFetcher(store RangeStore) *Fetcher {
	return &Fetcher{Store: store}
}

// FetchRange implements breach.RangeFetcher.
// Отсутствующий префикс дает пустой диапазон, а не ошибку.
func (f *Fetcher) FetchRange(ctx context.Context, prefix string) (io.ReadCloser, error) {
	prefix = strings.ToUpper(prefix)
	if !breach.IsPrefix(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	entries, err := f.Store.Range(ctx, prefix)
	if err != nil {
		if errors.Is(err, ErrPrefixNotFound) {
			return io.NopCloser(bytes.NewReader(nil)), nil
		}
		return nil, &breach.TransportError{Prefix: prefix, Err: err}
	}

	var buf bytes.Buffer
	if err := breach.FormatRange(&buf, entries); err != nil {
		return nil, fmt.Errorf("failed to render range: %w", err)
	}

	return io.NopCloser(&buf), nil
}
