package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/aiservice"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/analytics"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/category"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// ProductService serves catalog listing, search and per-variant analytics
type ProductService struct {
	shops          *shopClients
	ai             *aiservice.Client
	categories     *category.Resolver
	staleThreshold float64
	now            func() time.Time
	logger         *zap.Logger
}

type ProductListResponse struct {
	Products   []domain.Product   `json:"products"`
	Pagination shopify.Pagination `json:"pagination"`
	Count      int                `json:"count"`
}

// Fetch returns one page of products. Search narrows by title on Shopify's side.
func (s *ProductService) Fetch(ctx context.Context, req FetchProductsRequest) (*ProductListResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	page, err := client.ListProducts(ctx, shopify.ProductListOptions{
		Limit:    req.Limit,
		PageInfo: req.PageInfo,
		Title:    req.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return &ProductListResponse{Products: nonNil(page.Products), Pagination: page.Pagination, Count: len(page.Products)}, nil
}

type ProductSearchResponse struct {
	Products     []analytics.ScoredProduct `json:"products"`
	Count        int                       `json:"count"`
	TotalScanned int                       `json:"total_scanned"`
	FullCatalog  bool                      `json:"full_catalog"`
	Truncated    bool                      `json:"truncated"`
}

// Search filters and scores products. Filters Shopify cannot apply force a walk
// over the whole catalog, capped at shopify.MaxCatalogPages pages.
func (s *ProductService) Search(ctx context.Context, req SearchProductsRequest) (*ProductSearchResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	params := req.ProductSearchParams
	if err := params.Validate(); err != nil {
		return nil, err
	}

	opts := shopify.ProductListOptions{
		Limit:        params.Limit,
		Title:        params.Title,
		Vendor:       params.Vendor,
		ProductType:  params.ProductType,
		Status:       params.Status,
		CreatedAtMin: params.CreatedAtMin,
		CreatedAtMax: params.CreatedAtMax,
		UpdatedAtMin: params.UpdatedAtMin,
		UpdatedAtMax: params.UpdatedAtMax,
	}

	var products []domain.Product
	res := &ProductSearchResponse{}
	if params.NeedsClientSideFiltering() {
		res.FullCatalog = true
		products, res.Truncated, err = client.GetAllProducts(ctx, opts)
	} else {
		var page *shopify.ProductPage
		page, err = client.ListProducts(ctx, opts)
		if page != nil {
			products = page.Products
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	res.Products = analytics.FilterAndScore(products, params)
	res.Count = len(res.Products)
	res.TotalScanned = len(products)
	s.logger.Debug("Product search completed",
		zap.String("shop", client.ShopDomain()),
		zap.Int("scanned", res.TotalScanned),
		zap.Int("matched", res.Count),
		zap.Bool("full_catalog", res.FullCatalog),
	)
	return res, nil
}

type ProductSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Tags        string    `json:"tags"`
	LiveSince   time.Time `json:"live_since"`
}

type VariantSummary struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	SKU               string   `json:"sku"`
	Price             float64  `json:"price"`
	CompareAtPrice    *float64 `json:"compare_at_price"`
	InventoryQuantity int      `json:"inventory_quantity"`
}

// VariantAnalyticsResponse is the full analytics answer for one variant
type VariantAnalyticsResponse struct {
	Product              ProductSummary                 `json:"product"`
	Variant              VariantSummary                 `json:"variant"`
	Category             category.Resolution            `json:"category"`
	Metrics              analytics.VariantMetrics       `json:"metrics"`
	StaleAnalysis        analytics.StaleAnalysisResult  `json:"stale_analysis"`
	Suggestions          []analytics.Suggestion         `json:"suggestions"`
	PerformanceSummary   analytics.PerformanceSummary   `json:"performance_summary"`
	ThresholdExplanation analytics.ThresholdExplanation `json:"threshold_explanation"`
	SampleWindow         string                         `json:"sample_window"`
	GeneratedAt          time.Time                      `json:"generated_at"`
}

// variantContext is everything computed for one variant before it is shaped into a response
type variantContext struct {
	product  *domain.Product
	variant  *domain.Variant
	orders   []domain.Order
	metrics  analytics.VariantMetrics
	stale    analytics.StaleAnalysisResult
	category category.Resolution
	now      time.Time
}

// VariantAnalytics computes metrics, staleness and suggestions for one variant
func (s *ProductService) VariantAnalytics(ctx context.Context, productID, variantID int64, req VariantAnalyticsRequest) (*VariantAnalyticsResponse, error) {
	vc, err := s.analyzeVariant(ctx, productID, variantID, req)
	if err != nil {
		return nil, err
	}

	price := vc.variant.Price.InexactFloat64()
	units := vc.metrics.UnitsSold
	report := analytics.GenerateSuggestions(analytics.SuggestionInput{
		Price:                price,
		MonthlySalesRate:     vc.metrics.MonthlySalesRate,
		Threshold:            analytics.ThresholdFor(vc.category.Category, vc.metrics.DaysLive, price),
		CurrentInventory:     vc.metrics.CurrentInventory,
		DaysOfStockRemaining: vc.metrics.DaysOfStockRemaining,
		TotalRevenue:         vc.metrics.Revenue,
		MonthsLive:           vc.metrics.MonthsLive,
		SalesAcceleration:    vc.metrics.SalesAcceleration,
		SeasonalityScore:     vc.metrics.SeasonalityScore,
		Stale:                &vc.stale,
		TotalUnitsSold:       &units,
	})

	return &VariantAnalyticsResponse{
		Product:              summarizeProduct(vc.product),
		Variant:              summarizeVariant(vc.variant),
		Category:             vc.category,
		Metrics:              vc.metrics.Rounded(),
		StaleAnalysis:        vc.stale,
		Suggestions:          report.Suggestions,
		PerformanceSummary:   report.Performance,
		ThresholdExplanation: report.ThresholdExplanation,
		SampleWindow:         vc.metrics.SampleWindow,
		GeneratedAt:          vc.now,
	}, nil
}

// AIDataResult holds either the strategy service's answer or the local payload
type AIDataResult struct {
	Strategy json.RawMessage
	Metrics  analytics.AIMetrics
}

// AIData builds the AI metrics payload and forwards it to the strategy service.
// When that service is missing or fails, only Metrics is set.
func (s *ProductService) AIData(ctx context.Context, productID, variantID int64, req VariantAnalyticsRequest) (*AIDataResult, error) {
	vc, err := s.analyzeVariant(ctx, productID, variantID, req)
	if err != nil {
		return nil, err
	}
	payload := analytics.BuildAIMetrics(*vc.product, *vc.variant, vc.category.Category, vc.category.Source, vc.metrics, vc.stale, vc.orders)
	result := &AIDataResult{Metrics: payload}

	if !s.ai.StrategyConfigured() {
		return result, nil
	}
	raw, err := s.ai.PredictStrategy(ctx, payload)
	if err != nil {
		s.logger.Warn("Strategy prediction failed, returning local metrics",
			zap.Int64("product_id", productID),
			zap.Int64("variant_id", variantID),
			zap.Error(err),
		)
		return result, nil
	}
	result.Strategy = raw
	return result, nil
}

type StockStatusResponse struct {
	ProductID    int64                          `json:"product_id"`
	Title        string                         `json:"title"`
	Variants     []analytics.VariantStockStatus `json:"variants"`
	SampleWindow string                         `json:"sample_window"`
}

// StockStatus reports days of stock and inventory status for every variant of a product
func (s *ProductService) StockStatus(ctx context.Context, productID int64, creds ShopCredentials) (*StockStatusResponse, error) {
	client, err := s.shops.forRequest(creds)
	if err != nil {
		return nil, err
	}
	product, orders, err := fetchProductAndOrders(ctx, client, productID)
	if err != nil {
		return nil, err
	}
	return &StockStatusResponse{
		ProductID:    product.ID,
		Title:        product.Title,
		Variants:     analytics.StockStatus(*product, orders, s.now()),
		SampleWindow: analytics.SampleWindow(len(orders)),
	}, nil
}

type ProductAnalyticsResponse struct {
	Analytics analytics.ProductAnalytics `json:"analytics"`
	Sample    string                     `json:"sample"`
}

// Analytics rolls up one page of the catalog
func (s *ProductService) Analytics(ctx context.Context, req AnalyticsRequest) (*ProductAnalyticsResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = shopify.MaxPageSize
	}
	page, err := client.ListProducts(ctx, shopify.ProductListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return &ProductAnalyticsResponse{
		Analytics: analytics.SummarizeProducts(page.Products),
		Sample:    fmt.Sprintf("first %d products", len(page.Products)),
	}, nil
}

func (s *ProductService) analyzeVariant(ctx context.Context, productID, variantID int64, req VariantAnalyticsRequest) (*variantContext, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	threshold := s.staleThreshold
	if req.ThresholdPercent != nil {
		threshold = *req.ThresholdPercent
	}
	if threshold < 0 {
		return nil, &apperrors.ErrValidation{
			Message: "threshold_percent cannot be negative",
			Fields:  map[string]string{"threshold_percent": "must be zero or positive"},
		}
	}

	product, orders, err := fetchProductAndOrders(ctx, client, productID)
	if err != nil {
		return nil, err
	}
	variant, ok := product.FindVariant(variantID)
	if !ok {
		return nil, &apperrors.ErrNotFound{
			Resource: "variant",
			ID:       fmt.Sprint(variantID),
			Message:  fmt.Sprintf("variant %d not found in product %d", variantID, productID),
		}
	}

	now := s.now()
	metrics := analytics.CalculateVariantMetrics(*variant, *product, orders, now)
	stale := analytics.AnalyzeStaleness(metrics.UnitsSold, metrics.EstimatedInitialInventory, product.LiveSince(), now, threshold)
	resolution := s.categories.Resolve(ctx, *product)

	s.logger.Debug("Variant analyzed",
		zap.String("shop", client.ShopDomain()),
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID),
		zap.Int("orders", len(orders)),
		zap.String("category", resolution.Category),
	)
	return &variantContext{
		product:  product,
		variant:  variant,
		orders:   orders,
		metrics:  metrics,
		stale:    stale,
		category: resolution,
		now:      now,
	}, nil
}

// fetchProductAndOrders loads the product and the recent order window concurrently
func fetchProductAndOrders(ctx context.Context, client *shopify.Client, productID int64) (*domain.Product, []domain.Order, error) {
	var (
		product *domain.Product
		orders  []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := client.GetProduct(gctx, productID)
		if err != nil {
			return fmt.Errorf("failed to fetch product %d: %w", productID, err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		o, err := client.RecentOrders(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch orders: %w", err)
		}
		orders = o
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return product, orders, nil
}

func summarizeProduct(p *domain.Product) ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Title:       p.Title,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        p.Tags,
		LiveSince:   p.LiveSince(),
	}
}

func summarizeVariant(v *domain.Variant) VariantSummary {
	var compareAt *float64
	if v.CompareAtPrice.Valid {
		c := v.CompareAtPrice.Decimal.InexactFloat64()
		compareAt = &c
	}
	return VariantSummary{
		ID:                v.ID,
		Title:             v.Title,
		SKU:               v.SKU,
		Price:             v.Price.InexactFloat64(),
		CompareAtPrice:    compareAt,
		InventoryQuantity: v.InventoryQuantity,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
