package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/internal/server/metrics"
)

var passwordRange = []breach.Entry{
	{Suffix: "0018A45C4D1DEF81644B54AB7F969B88D65", Count: 4},
	{Suffix: "1E4C9B93F3F0682250B6CF8331B7EE68FD8", Count: 10434004},
}

func newTestRangeStore() *corpus.RangeStoreMock {
	return &corpus.RangeStoreMock{
		RangeFunc: func(ctx context.Context, prefix string) ([]breach.Entry, error) {
			if prefix == "5BAA6" {
				return passwordRange, nil
			}
			return nil, corpus.ErrPrefixNotFound
		},
	}
}

func serveRange(h *RangeHandler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /range/{prefix}", h.Range)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestRangeHandler_Range(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	h := NewRangeHandler(newTestRangeStore(), 0, m, setupTestLogger())

	tests := []struct {
		name         string
		path         string
		expectedBody string
		expectedCode int
	}{
		{
			name:         "known prefix",
			path:         "/range/5BAA6",
			expectedCode: http.StatusOK,
			expectedBody: "0018A45C4D1DEF81644B54AB7F969B88D65:4\r\n1E4C9B93F3F0682250B6CF8331B7EE68FD8:10434004\r\n",
		},
		{
			name:         "lowercase prefix",
			path:         "/range/5baa6",
			expectedCode: http.StatusOK,
			expectedBody: "0018A45C4D1DEF81644B54AB7F969B88D65:4\r\n1E4C9B93F3F0682250B6CF8331B7EE68FD8:10434004\r\n",
		},
		{
			name:         "unknown prefix is empty",
			path:         "/range/00000",
			expectedCode: http.StatusOK,
			expectedBody: "",
		},
		{
			name:         "short prefix",
			path:         "/range/5BAA",
			expectedCode: http.StatusBadRequest,
			expectedBody: "The hash prefix was not in a valid format\n",
		},
		{
			name:         "non-hex prefix",
			path:         "/range/5BAAZ",
			expectedCode: http.StatusBadRequest,
			expectedBody: "The hash prefix was not in a valid format\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveRange(h, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RangeRequests.WithLabelValues(metrics.OutcomeServed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RangeRequests.WithLabelValues(metrics.OutcomeEmpty)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RangeRequests.WithLabelValues(metrics.OutcomeInvalid)))
}

func TestRangeHandler_Padding(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	h := NewRangeHandler(newTestRangeStore(), 0, m, setupTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/range/5BAA6", nil)
	req.Header.Set("Add-Padding", "true")

	w := serveRange(h, req)
	require.Equal(t, http.StatusOK, w.Code)

	entries, skipped, err := breach.ParseRange(strings.NewReader(w.Body.String()), breach.StrictParse)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Len(t, entries, MinPaddedEntries)

	// реальные записи сохраняются
	assert.Equal(t, breach.FoundTimes(10434004), breach.MatchSuffix(entries, "1E4C9B93F3F0682250B6CF8331B7EE68FD8"))
	assert.Equal(t, breach.FoundTimes(4), breach.MatchSuffix(entries, "0018A45C4D1DEF81644B54AB7F969B88D65"))

	// исходный срез не изменен
	assert.Len(t, passwordRange, 2)
}

func TestRangeHandler_Cache(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	store := newTestRangeStore()
	h := NewRangeHandler(store, DefaultCacheTTL, m, setupTestLogger())

	for i := 0; i < 3; i++ {
		w := serveRange(h, httptest.NewRequest(http.MethodGet, "/range/5BAA6", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Len(t, store.RangeCalls(), 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookups.WithLabelValues(metrics.CacheHit)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookups.WithLabelValues(metrics.CacheMiss)))
}

func TestRangeHandler_StoreError(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	store := &corpus.RangeStoreMock{
		RangeFunc: func(ctx context.Context, prefix string) ([]breach.Entry, error) {
			return nil, errors.New("disk I/O error")
		},
	}
	h := NewRangeHandler(store, DefaultCacheTTL, m, setupTestLogger())

	w := serveRange(h, httptest.NewRequest(http.MethodGet, "/range/5BAA6", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RangeRequests.WithLabelValues(metrics.OutcomeError)))
}

func TestPadRange(t *testing.T) {
	padded, err := padRange(passwordRange, 10)
	require.NoError(t, err)
	assert.Len(t, padded, 10)

	seen := make(map[string]bool)
	for i, e := range padded {
		assert.True(t, breach.IsSuffix(e.Suffix), e.Suffix)
		assert.False(t, seen[e.Suffix], "duplicate suffix %s", e.Suffix)
		seen[e.Suffix] = true
		if i > 0 {
			assert.Less(t, padded[i-1].Suffix, e.Suffix)
		}
	}

	same, err := padRange(passwordRange, 1)
	require.NoError(t, err)
	assert.Equal(t, passwordRange, same)
}
