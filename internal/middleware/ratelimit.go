package middleware

import (
	"net/http"
	"strconv"

	"github.com/osmanylima/osmany-lima/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// RateLimit limits requests per client IP with the given limiter instance.
func RateLimit(limiterInstance *limiter.Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			// fail open when the store is unavailable
			logger.Error("Failed to get rate limit context",
				zap.String("ip", ip),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

		if context.Reached {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.Int64("limit", context.Limit),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Error: model.TooManyRequestsMessage,
			})
			return
		}

		c.Next()
	}
}
