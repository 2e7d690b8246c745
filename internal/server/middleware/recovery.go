package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware создает middleware для восстановления после паники
// Перехватывает panic, логирует стек вызовов и возвращает 500 Internal Server Error
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// http.ErrAbortHandler штатно прерывает ответ
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						"error", err,
						"request_id", RequestIDFromContext(r.Context()),
						"method", r.Method,
						"path", sanitizePath(r.URL.Path),
						"remote_addr", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)

					// Возвращаем generic ошибку клиенту (не раскрываем детали)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
