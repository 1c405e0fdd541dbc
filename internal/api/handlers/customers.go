package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// HandleFetchCustomers handles POST /api/customers/fetch
func HandleFetchCustomers(customers *service.CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FetchCustomersRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := customers.Fetch(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to fetch customers", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleCustomerAnalytics handles POST /api/customers/analytics
func HandleCustomerAnalytics(customers *service.CustomerService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AnalyticsRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := customers.Analytics(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to compute customer analytics", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
