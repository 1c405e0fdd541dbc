package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/api/handlers"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/api/middleware"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

var endpoints = []string{
	"GET /health",
	"POST /api/products/fetch",
	"POST /api/products/search",
	"POST /api/products/variant-analytics/:productId/:variantId",
	"POST /api/products/ai-data/:productId/:variantId",
	"POST /api/products/stock-status/:productId",
	"POST /api/products/analytics",
	"POST /api/orders/fetch",
	"POST /api/orders/analytics",
	"POST /api/customers/fetch",
	"POST /api/customers/analytics",
	"POST /api/ltv-cac/analyze",
	"POST /api/auth/initiate",
	"POST /api/auth/exchange-token",
	"GET /api/auth/callback",
	"POST /api/auth/validate",
	"POST /webhooks/shopify",
}

// NewRouter creates and configures the Gin router. rdb may be nil, which disables rate limiting.
func NewRouter(cfg *config.Config, svc *service.Services, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(corsConfig(cfg.CORS)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   "Revenue Model Optimizer API",
			"endpoints": endpoints,
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	router.POST("/webhooks/shopify",
		middleware.ShopifyWebhookAuth(cfg.Shopify.WebhookSecret, logger),
		handlers.HandleShopifyWebhook(logger),
	)

	api := router.Group("/api")
	if rdb != nil {
		api.Use(middleware.RateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, logger))
	}
	{
		products := api.Group("/products")
		products.POST("/fetch", handlers.HandleFetchProducts(svc.Products, logger))
		products.POST("/search", handlers.HandleSearchProducts(svc.Products, logger))
		products.POST("/variant-analytics/:productId/:variantId", handlers.HandleVariantAnalytics(svc.Products, logger))
		products.POST("/ai-data/:productId/:variantId", handlers.HandleAIData(svc.Products, logger))
		products.POST("/stock-status/:productId", handlers.HandleStockStatus(svc.Products, logger))
		products.POST("/analytics", handlers.HandleProductAnalytics(svc.Products, logger))

		orders := api.Group("/orders")
		orders.POST("/fetch", handlers.HandleFetchOrders(svc.Orders, logger))
		orders.POST("/analytics", handlers.HandleOrderAnalytics(svc.Orders, logger))

		customers := api.Group("/customers")
		customers.POST("/fetch", handlers.HandleFetchCustomers(svc.Customers, logger))
		customers.POST("/analytics", handlers.HandleCustomerAnalytics(svc.Customers, logger))

		api.POST("/ltv-cac/analyze", handlers.HandleLTVCAC(svc.LTVCAC, logger))

		auth := api.Group("/auth")
		auth.POST("/initiate", handlers.HandleAuthInitiate(svc.Auth, logger))
		auth.POST("/exchange-token", handlers.HandleExchangeToken(svc.Auth, logger))
		auth.GET("/callback", handlers.HandleAuthCallback(svc.Auth, logger))
		auth.POST("/validate", handlers.HandleAuthValidate(svc.Auth, logger))
	}

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	return cc
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
