package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/api/middleware"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// credentialsExample is echoed back when a request omits shop credentials
var credentialsExample = gin.H{
	"shopDomain":  "your-store.myshopify.com",
	"accessToken": "shpat_xxxxxxxxxxxxxxxxxxxxx",
}

// respondError translates a service error into the {error, details} body
func respondError(c *gin.Context, logger *zap.Logger, message string, err error) {
	var (
		missing       *apperrors.ErrMissingCredentials
		validation    *apperrors.ErrValidation
		notFound      *apperrors.ErrNotFound
		upstream      *apperrors.ErrUpstream
		unauthorized  *apperrors.ErrUnauthorized
		notConfigured *apperrors.ErrNotConfigured
	)
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           "Missing required credentials",
			"details":         err.Error(),
			"required_fields": []string{"shopDomain", "accessToken"},
			"missing_fields":  missing.Missing,
			"example":         credentialsExample,
		})
	case errors.As(err, &validation):
		body := gin.H{"error": "Invalid request", "details": validation.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "details": notFound.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": message, "details": unauthorized.Error()})
	case errors.As(err, &notConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": message, "details": notConfigured.Error()})
	case errors.As(err, &upstream):
		logger.Warn("Upstream request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.String("service", upstream.Service),
			zap.Int("upstream_status", upstream.StatusCode),
		)
		c.JSON(upstream.HTTPStatus(), gin.H{"error": message, "details": err.Error()})
	default:
		logger.Error(message,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

// bindBody decodes the JSON body into req. An empty body leaves req zero-valued
// so credential checks report what is missing.
func bindBody(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON", "details": err.Error()})
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": name + " must be a positive integer",
		})
		return 0, false
	}
	return id, true
}
