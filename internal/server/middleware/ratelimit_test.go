package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter := NewRateLimiter(60, time.Minute, logger)

	assert.NotNil(t, limiter)
	assert.Equal(t, 60, limiter.burst)
	assert.InDelta(t, 1.0, float64(limiter.limit), 0.0001)
	assert.NotNil(t, limiter.limiters)
}

func TestRateLimiter_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("First requests within limit are allowed", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute, logger)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("192.168.1.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
	})

	t.Run("Requests over limit are denied", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute, logger)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("192.168.1.2"))
		}

		assert.False(t, limiter.Allow("192.168.1.2"), "request over limit should be denied")
	})

	t.Run("Different keys are tracked separately", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute, logger)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"), "key1 over limit")

		assert.True(t, limiter.Allow("10.0.0.2"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("Tokens refill over time", func(t *testing.T) {
		limiter := NewRateLimiter(1, 50*time.Millisecond, logger)

		assert.True(t, limiter.Allow("10.0.0.3"))
		assert.False(t, limiter.Allow("10.0.0.3"))

		time.Sleep(80 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.3"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(2, time.Minute, logger)

	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/range/5BAA6", nil)
		req.RemoteAddr = "172.16.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_IgnoresSpoofedHeaders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		trustProxy bool
		expected   []int
	}{
		{
			name:     "headers ignored by default",
			expected: []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests},
		},
		{
			name:       "headers used behind trusted proxy",
			trustProxy: true,
			expected:   []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(1, time.Minute, logger, WithTrustProxy(tt.trustProxy))
			handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			codes := make([]int, 0, 3)
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodGet, "/range/5BAA6", nil)
				req.RemoteAddr = "172.16.0.1:5555"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)
				codes = append(codes, w.Code)
			}

			assert.Equal(t, tt.expected, codes)
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		expected   string
		trustProxy bool
	}{
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1:1234",
			expected:   "192.168.1.1",
		},
		{
			name:       "x-forwarded-for ignored without trusted proxy",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			expected:   "10.0.0.1",
		},
		{
			name:       "x-real-ip ignored without trusted proxy",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			expected:   "10.0.0.1",
		},
		{
			name:       "x-forwarded-for last hop behind trusted proxy",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7"},
			expected:   "203.0.113.7",
			trustProxy: true,
		},
		{
			name:       "x-real-ip behind trusted proxy",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			expected:   "198.51.100.4",
			trustProxy: true,
		},
		{
			name:       "empty forwarded hop falls back to remote addr",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, "},
			expected:   "10.0.0.1",
			trustProxy: true,
		},
		{
			name:       "malformed remote addr",
			remoteAddr: "unix-socket",
			expected:   "unix-socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req, tt.trustProxy))
		})
	}
}
