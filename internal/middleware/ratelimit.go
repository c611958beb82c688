package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"storefront-service/internal/models"
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. With no Redis
// client it passes everything through, matching the lenient development
// behavior of the original storefront.
func RateLimit(redisClient *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		count, err := redisClient.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis trouble never blocks browsing.
			c.Next()
			return
		}
		if count == 1 {
			redisClient.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "RATE_LIMITED",
					Message: "Too many requests, please try again later.",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
