package main

import (
	"compress/gzip"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/errors"
	"github.com/credlens/credlens/internal/middleware"
	"github.com/credlens/credlens/internal/monitoring"
	"github.com/credlens/credlens/internal/ratelimit"
	"github.com/credlens/credlens/internal/scoring"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadServerConfig(os.Getenv("CREDLENS_CONFIG"))
	if err != nil {
		// Logger is not up yet; write plainly and bail.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := monitoring.NewLogger(cfg.SlogLevel())

	kb, err := cfg.LoadKnowledgeBase()
	if err != nil {
		logger.Error("failed to load role knowledge base", "error", err)
		os.Exit(1)
	}

	pipeline := scoring.NewPipeline(kb)
	metrics := monitoring.NewMetrics()

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiting", "error", err)
	}
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:   cfg.RateLimitPerMinute,
		BurstMultiplier: cfg.RateLimitBurst,
	}, metrics)

	responseCache := cache.NewCache(cfg.CacheTTL)

	router := buildRouter(cfg, pipeline, metrics, logger, limiter, responseCache)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server",
			"port", cfg.Port,
			"roles", len(pipeline.KnownRoles()),
			"redis_enabled", redisClient != nil && redisClient.IsEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

// buildRouter assembles the middleware chain and routes. Split out so tests
// can exercise the full HTTP surface without binding a port.
func buildRouter(
	cfg *ServerConfig,
	pipeline *scoring.Pipeline,
	metrics *monitoring.Metrics,
	logger *monitoring.Logger,
	limiter *ratelimit.RateLimiter,
	responseCache *cache.Cache,
) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.Gzip(gzip.DefaultCompression))
	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(metrics, logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	if limiter != nil {
		r.Use(limiter.IPRateLimitMiddleware())
	}
	if responseCache != nil {
		r.Use(responseCache.Middleware(metrics, logger))
	}

	handlers := newScoreHandlers(pipeline, metrics, logger)

	r.GET("/health", func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"metrics":   metrics.GetStats(),
		}
		if responseCache != nil {
			response["cache"] = responseCache.Stats()
		}
		if limiter != nil {
			response["rate_limiter"] = limiter.GetStats()
		}
		c.JSON(http.StatusOK, response)
	})

	api := r.Group("/api/v1")
	{
		api.GET("/roles", handlers.listRoles)

		score := api.Group("/score")
		{
			score.POST("/trust", handlers.scoreTrust)
			score.POST("/impact", handlers.scoreImpact)
			score.POST("/compatibility", handlers.scoreCompatibility)
			score.POST("/match", handlers.scoreMatch)
		}
	}

	return r
}
