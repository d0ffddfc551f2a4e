package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "devevents/internal/delivery/http/helpers"
)

const healthTimeout = 2 * time.Second

// Pinger checks that the backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

type HealthController struct {
	Logger *slog.Logger
	Store  string
	Ping   Pinger
}

func NewHealthController(logger *slog.Logger, store string, ping Pinger) *HealthController {
	return &HealthController{Logger: logger, Store: store, Ping: ping}
}

// Health godoc
// @Summary Liveness and store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "health check failed", "store", c.Store, "err", err)
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeInternalError, "store unavailable")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Store: c.Store})
}
