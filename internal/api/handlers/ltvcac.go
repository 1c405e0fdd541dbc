package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// HandleLTVCAC handles POST /api/ltv-cac/analyze
func HandleLTVCAC(ltvcac *service.LTVCACService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LTVCACRequest
		if !bindBody(c, &req) {
			return
		}
		res, err := ltvcac.Analyze(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, "Failed to analyze LTV:CAC", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
