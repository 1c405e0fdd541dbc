package category

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// General is the category of last resort
const General = "general"

// Known categories, in tie-break order for tag matching
var Known = []string{"furniture", "fashion", "food", "fitness", "electronics"}

var productTypeCategories = map[string]string{
	"clothing":    "fashion",
	"apparel":     "fashion",
	"shoes":       "fashion",
	"accessories": "fashion",
	"electronics": "electronics",
	"gadgets":     "electronics",
	"computers":   "electronics",
	"food":        "food",
	"grocery":     "food",
	"beverages":   "food",
	"snacks":      "food",
	"fitness":     "fitness",
	"sports":      "fitness",
	"gym":         "fitness",
	"furniture":   "furniture",
	"home":        "furniture",
	"decor":       "furniture",
}

// Classifier is an external category classification service
type Classifier interface {
	Classify(ctx context.Context, product domain.Product) (json.RawMessage, error)
}

// Resolution is a category and how it was found
type Resolution struct {
	Category string                `json:"category"`
	Source   domain.CategorySource `json:"source"`
}

// Resolver picks a product category from tags, then the classifier, then product type.
// It never fails.
type Resolver struct {
	classifier Classifier
	logger     *zap.Logger
}

// NewResolver creates a resolver. classifier may be nil.
func NewResolver(classifier Classifier, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{classifier: classifier, logger: logger}
}

// Resolve determines the category of product
func (r *Resolver) Resolve(ctx context.Context, product domain.Product) Resolution {
	if c, ok := FromTags(product.Tags); ok {
		return Resolution{Category: c, Source: domain.CategorySourceTags}
	}

	if r.classifier != nil {
		redacted := product
		redacted.Variants = nil
		redacted.Images = nil
		raw, err := r.classifier.Classify(ctx, redacted)
		if err != nil {
			r.logger.Warn("Category classification failed, falling back to product type",
				zap.Int64("product_id", product.ID), zap.Error(err))
		} else if c, ok := Extract(raw); ok {
			return Resolution{Category: c, Source: domain.CategorySourceAI}
		} else {
			r.logger.Warn("Category classification returned no usable category",
				zap.Int64("product_id", product.ID), zap.ByteString("response", raw))
		}
	}

	if c, ok := FromProductType(product.ProductType); ok {
		return Resolution{Category: c, Source: domain.CategorySourceProductType}
	}
	return Resolution{Category: General, Source: domain.CategorySourceDefault}
}

// FromTags returns the first known category appearing in the comma-joined tags
func FromTags(tags string) (string, bool) {
	lower := strings.ToLower(tags)
	if strings.TrimSpace(lower) == "" {
		return "", false
	}
	for _, c := range Known {
		if strings.Contains(lower, c) {
			return c, true
		}
	}
	return "", false
}

// FromProductType maps a Shopify product type onto a category
func FromProductType(productType string) (string, bool) {
	c, ok := productTypeCategories[strings.ToLower(strings.TrimSpace(productType))]
	return c, ok
}
