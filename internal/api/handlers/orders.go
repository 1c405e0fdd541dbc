package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// HandleFetchOrders handles POST /api/orders/fetch
func HandleFetchOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FetchOrdersRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := orders.Fetch(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to fetch orders", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleOrderAnalytics handles POST /api/orders/analytics
func HandleOrderAnalytics(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AnalyticsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := orders.Analytics(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to compute order analytics", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
