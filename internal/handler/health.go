package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osmanylima/osmany-lima/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "exchange-api"
	serviceVersion = "v1.0.0"
)

// Pinger is satisfied by the Redis client wrapper.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	redis Pinger
}

// NewHealthHandler takes a nil Pinger when Redis is not configured.
func NewHealthHandler(redis Pinger) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// HealthCheck reports service health; a configured but unreachable Redis
// degrades it to 503.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	resp := model.HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
		Redis:   "disabled",
	}
	status := http.StatusOK

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.redis.HealthCheck(ctx); err != nil {
			resp.Status = "degraded"
			resp.Redis = "down"
			status = http.StatusServiceUnavailable
		} else {
			resp.Redis = "up"
		}
	}

	c.JSON(status, resp)
}
