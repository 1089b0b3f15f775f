package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, limit int64, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", RateLimiter(client, limit, window), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router, mr
}

func get(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	router, _ := newRateLimitedRouter(t, 2, time.Minute)

	assert.Equal(t, http.StatusOK, get(router))
	assert.Equal(t, http.StatusOK, get(router))
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	router, _ := newRateLimitedRouter(t, 2, time.Minute)

	get(router)
	get(router)
	assert.Equal(t, http.StatusTooManyRequests, get(router))
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	router, mr := newRateLimitedRouter(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, get(router))
	assert.Equal(t, http.StatusTooManyRequests, get(router))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, get(router))
}
