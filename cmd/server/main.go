package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fpltools/fpl-transfer-analyzer/internal/analyzer"
	"github.com/fpltools/fpl-transfer-analyzer/internal/api"
	"github.com/fpltools/fpl-transfer-analyzer/internal/api/handlers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/api/middleware"
	"github.com/fpltools/fpl-transfer-analyzer/internal/providers"
	"github.com/fpltools/fpl-transfer-analyzer/internal/services"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/config"
	"github.com/fpltools/fpl-transfer-analyzer/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	store := services.NewSnapshotStore(db, cacheService, cfg.CacheDuration, logrus.StandardLogger())
	fplClient := providers.NewFPLClient(cfg.FPLAPIBaseURL, cfg.APITimeout, cfg.MaxRetries, cfg.APIRateLimit, logrus.StandardLogger())
	scoring := analyzer.ScoringConfigFrom(cfg)

	// Parse fetch interval
	fetchInterval, err := time.ParseDuration(cfg.DataRefreshInterval)
	if err != nil {
		logrus.Warnf("Invalid refresh interval, using default 1h: %v", err)
		fetchInterval = time.Hour
	}

	// Initialize data fetcher
	dataFetcher := services.NewDataFetcherService(fplClient, store, logrus.StandardLogger(), fetchInterval)
	if err := dataFetcher.Start(!cfg.SkipInitialDataFetch); err != nil {
		logrus.Errorf("Failed to start data fetcher: %v", err)
	}
	defer dataFetcher.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", handlers.GetHealth)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, store, cacheService, fplClient, dataFetcher, scoring, logrus.StandardLogger())

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
