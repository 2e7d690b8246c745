package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/server/metrics"
	"github.com/iudanet/pwnedcheck/pkg/api"
)

const (
	// MinPaddedEntries минимальный размер ответа при Add-Padding: true
	MinPaddedEntries = 800

	// DefaultCacheTTL время жизни диапазона в кеше
	DefaultCacheTTL = 10 * time.Minute
)

// RangeHandler отдает диапазоны из локального корпуса
type RangeHandler struct {
	store   corpus.RangeStore
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRangeHandler создает handler для GET /range/{prefix}
// ttl <= 0 отключает кеширование
func NewRangeHandler(store corpus.RangeStore, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *RangeHandler {
	h := &RangeHandler{
		store:   store,
		metrics: m,
		logger:  logger,
	}
	if ttl > 0 {
		h.cache = cache.New(ttl, 2*ttl)
	}
	return h
}

// Range обрабатывает GET /range/{prefix}
// Ответ: text/plain, по одной паре SUFFIX:COUNT на строку
func (h *RangeHandler) Range(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		h.metrics.RangeLatency.Observe(time.Since(start).Seconds())
	}()

	prefix := strings.ToUpper(r.PathValue("prefix"))
	if !breach.IsPrefix(prefix) {
		h.metrics.RangeRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		http.Error(w, api.InvalidPrefixMessage, http.StatusBadRequest)
		return
	}

	entries, err := h.loadRange(r.Context(), prefix)
	if err != nil {
		h.metrics.RangeRequests.WithLabelValues(metrics.OutcomeError).Inc()
		h.logger.Error("failed to load range", "prefix", prefix, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	outcome := metrics.OutcomeServed
	if len(entries) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	h.metrics.RangeRequests.WithLabelValues(outcome).Inc()
	h.metrics.RangeEntries.Observe(float64(len(entries)))

	if strings.EqualFold(r.Header.Get(api.PaddingHeader), "true") {
		entries, err = padRange(entries, MinPaddedEntries)
		if err != nil {
			h.logger.Error("failed to pad range", "prefix", prefix, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", api.RangeContentType)
	w.Header().Set("Cache-Control", "public, max-age=2678400")
	w.WriteHeader(http.StatusOK)
	if err := breach.FormatRange(w, entries); err != nil {
		h.logger.Error("failed to write range response", "prefix", prefix, "error", err)
	}
}

// loadRange читает диапазон из кеша или хранилища.
// Отсутствующий префикс это пустой диапазон.
func (h *RangeHandler) loadRange(ctx context.Context, prefix string) ([]breach.Entry, error) {
	if h.cache != nil {
		if v, ok := h.cache.Get(prefix); ok {
			h.metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
			return v.([]breach.Entry), nil
		}
		h.metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	}

	entries, err := h.store.Range(ctx, prefix)
	if err != nil && !errors.Is(err, corpus.ErrPrefixNotFound) {
		return nil, err
	}

	if h.cache != nil {
		h.cache.SetDefault(prefix, entries)
	}

	return entries, nil
}

// padRange дополняет диапазон случайными суффиксами с count=0 до minEntries записей.
// Исходный срез не изменяется.
func padRange(entries []breach.Entry, minEntries int) ([]breach.Entry, error) {
	if len(entries) >= minEntries {
		return entries, nil
	}

	padded := make([]breach.Entry, 0, minEntries)
	padded = append(padded, entries...)

	seen := make(map[string]struct{}, minEntries)
	for _, e := range entries {
		seen[e.Suffix] = struct{}{}
	}

	buf := make([]byte, (breach.SuffixLen+1)/2)
	for len(padded) < minEntries {
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		suffix := strings.ToUpper(hex.EncodeToString(buf))[:breach.SuffixLen]
		if _, dup := seen[suffix]; dup {
			continue
		}
		seen[suffix] = struct{}{}
		padded = append(padded, breach.Entry{Suffix: suffix, Count: 0})
	}

	slices.SortFunc(padded, func(a, b breach.Entry) int {
		return strings.Compare(a.Suffix, b.Suffix)
	})

	return padded, nil
}
