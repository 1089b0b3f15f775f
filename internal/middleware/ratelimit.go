package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window per-client-IP limiter backed by Redis.
func RateLimiter(client *redis.Client, limit int64, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "ratelimit:" + ctx.ClientIP()

		count, err := client.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			zap.L().Error("Could not increment rate limit key", zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		if count == 1 {
			client.Expire(ctx.Request.Context(), key, window)
		}

		if count > limit {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests"})
			return
		}

		ctx.Next()
	}
}
