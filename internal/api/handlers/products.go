package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// HandleFetchProducts handles POST /api/products/fetch
func HandleFetchProducts(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FetchProductsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := products.Fetch(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to fetch products", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleSearchProducts handles POST /api/products/search
func HandleSearchProducts(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SearchProductsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := products.Search(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to search products", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleVariantAnalytics handles POST /api/products/variant-analytics/:productId/:variantId
func HandleVariantAnalytics(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := paramID(c, "productId")
		if !ok {
			return
		}
		variantID, ok := paramID(c, "variantId")
		if !ok {
			return
		}
		var req service.VariantAnalyticsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := products.VariantAnalytics(c.Request.Context(), productID, variantID, req)
		if err != nil {
			respondError(c, logger, "Failed to analyze variant", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleAIData handles POST /api/products/ai-data/:productId/:variantId.
// The strategy service's answer is relayed byte for byte.
func HandleAIData(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := paramID(c, "productId")
		if !ok {
			return
		}
		variantID, ok := paramID(c, "variantId")
		if !ok {
			return
		}
		var req service.VariantAnalyticsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := products.AIData(c.Request.Context(), productID, variantID, req)
		if err != nil {
			respondError(c, logger, "Failed to build AI data", err)
			return
		}
		if res.Strategy != nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", res.Strategy)
			return
		}
		c.JSON(http.StatusOK, res.Metrics)
	}
}

// HandleStockStatus handles POST /api/products/stock-status/:productId
func HandleStockStatus(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := paramID(c, "productId")
		if !ok {
			return
		}
		var req service.ShopCredentials
		if !bindBody(c, &req) {
			return
		}
		res, err := products.StockStatus(c.Request.Context(), productID, req)
		if err != nil {
			respondError(c, logger, "Failed to compute stock status", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleProductAnalytics handles POST /api/products/analytics
func HandleProductAnalytics(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AnalyticsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := products.Analytics(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to compute product analytics", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
