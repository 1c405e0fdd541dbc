package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/api/middleware"
)

// Topics Shopify requires every public app to accept.
// Nothing merchant-specific is stored here, so each is acknowledged as-is.
var complianceTopics = map[string]bool{
	"customers/data_request": true,
	"customers/redact":       true,
	"shop/redact":            true,
	"app/uninstalled":        true,
}

// HandleShopifyWebhook handles POST /webhooks/shopify.
// The signature is checked by middleware.ShopifyWebhookAuth before this runs.
func HandleShopifyWebhook(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic, shop := middleware.GetWebhookSource(c)
		if !complianceTopics[topic] {
			// 200 so Shopify does not retry a topic we never subscribed to
			logger.Warn("Shopify webhook: unexpected topic", zap.String("topic", topic), zap.String("shop", shop))
			c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ignored", "topic": topic})
			return
		}

		logger.Info("Shopify webhook acknowledged",
			zap.String("topic", topic),
			zap.String("shop", shop),
			zap.String("webhook_id", c.GetHeader("X-Shopify-Webhook-Id")),
		)
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "acknowledged", "topic": topic})
	}
}
