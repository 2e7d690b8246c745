package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/pwnedcheck/internal/corpus"
	"github.com/iudanet/pwnedcheck/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	store   corpus.RangeStore
	logger  *slog.Logger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(store corpus.RangeStore, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		version: version,
		logger:  logger,
	}
}

// Health обрабатывает GET /health
// Проверяет доступность хранилища корпуса
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	status := http.StatusOK

	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.Error("corpus storage unavailable", slog.Any("error", err))
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		resp.Prefixes = stats.Prefixes
		resp.Entries = stats.Entries
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.Any("error", err))
	}
}
