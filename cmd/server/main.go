package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/api"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting revenue model optimizer",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("shopify_api_version", cfg.Shopify.APIVersion),
		zap.Bool("oauth_configured", cfg.Shopify.OAuthConfigured()),
		zap.Bool("ai_category_configured", cfg.AI.CategoryURL != ""),
		zap.Bool("ai_strategy_configured", cfg.AI.StrategyURL != ""),
	)

	// Redis is optional: it backs rate limiting and OAuth state
	rdb, err := config.NewRedisClient(context.Background(), cfg.RateLimit)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected; rate limiting enabled",
			zap.Int("max_requests", cfg.RateLimit.MaxRequests),
			zap.Duration("window", cfg.RateLimit.Window),
		)
	}

	services := service.NewServices(cfg, service.Deps{Redis: rdb}, logger)
	router := api.NewRouter(cfg, services, rdb, logger)

	// Write timeout covers a full-catalog search plus the AI call
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Shopify.UpstreamTimeout + cfg.AI.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}
