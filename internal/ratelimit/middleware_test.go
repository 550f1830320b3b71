package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/credlens/credlens/internal/monitoring"
)

func limitedRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(&RedisClient{enabled: false}, cfg, monitoring.NewMetrics())

	r := gin.New()
	r.Use(limiter.IPRateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func getFrom(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w
}

func TestIPRateLimitMiddleware(t *testing.T) {
	r := limitedRouter(Config{IPLimitPerMin: 2, BurstMultiplier: 1})

	// Burst floor of 5 admits the first five requests.
	for i := 0; i < 5; i++ {
		w := getFrom(r, "203.0.113.7:50000")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}

	w := getFrom(r, "203.0.113.7:50000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestIPRateLimitMiddlewareSeparatesClients(t *testing.T) {
	r := limitedRouter(Config{IPLimitPerMin: 2, BurstMultiplier: 1})

	for i := 0; i < 6; i++ {
		getFrom(r, "203.0.113.8:50000")
	}
	assert.Equal(t, http.StatusTooManyRequests, getFrom(r, "203.0.113.8:50000").Code)

	// A different client IP is not affected.
	assert.Equal(t, http.StatusOK, getFrom(r, "203.0.113.9:50000").Code)
}
