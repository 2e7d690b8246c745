package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter ограничивает частоту запросов по ключу (обычно IP адрес).
// Для каждого ключа свой token bucket; неактивные ключи вытесняются из кеша.
type RateLimiter struct {
	limiters   *cache.Cache
	logger     *slog.Logger
	limit      rate.Limit
	burst      int
	trustProxy bool
}

// RateLimiterOption настраивает RateLimiter
type RateLimiterOption func(*RateLimiter)

// WithTrustProxy включает ключ по X-Forwarded-For / X-Real-IP.
// Только за доверенным reverse proxy, который сам выставляет эти заголовки
func WithTrustProxy(trust bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// NewRateLimiter создает новый rate limiter
// requests - максимальное количество запросов за window, оно же размер burst
func NewRateLimiter(requests int, window time.Duration, logger *slog.Logger, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		limiters: cache.New(window*2, window*4),
		logger:   logger,
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow проверяет, разрешен ли запрос для данного ключа
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		// продлеваем жизнь активного ключа
		rl.limiters.SetDefault(key, l)
		return l
	}

	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.limiters.Add(key, l, cache.DefaultExpiration); err != nil {
		// ключ успели добавить конкурентно
		if v, ok := rl.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r, limiter.trustProxy)

			if !limiter.Allow(key) {
				limiter.logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", sanitizePath(r.URL.Path),
				)

				w.Header().Set("Retry-After", "1")
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса.
// По умолчанию это адрес соединения. С trustProxy берется последний адрес
// X-Forwarded-For (его дописал доверенный proxy), затем X-Real-IP
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
