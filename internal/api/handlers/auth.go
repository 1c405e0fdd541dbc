package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// HandleAuthInitiate handles POST /api/auth/initiate
func HandleAuthInitiate(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AuthInitiateRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := auth.Initiate(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to initiate OAuth", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleExchangeToken handles POST /api/auth/exchange-token
func HandleExchangeToken(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ExchangeTokenRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := auth.ExchangeToken(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to exchange token", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleAuthCallback handles GET /api/auth/callback, Shopify's redirect target
func HandleAuthCallback(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := auth.Callback(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			respondError(c, logger, "OAuth callback failed", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// HandleAuthValidate handles POST /api/auth/validate
func HandleAuthValidate(auth *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ShopCredentials
		if !bindBody(c, &req) {
			return
		}
		res, err := auth.Validate(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Token validation failed", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
