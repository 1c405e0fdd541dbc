package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/analytics"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

type LTVCACService struct {
	shops  *shopClients
	now    func() time.Time
	logger *zap.Logger
}

// ShopifyDataSummary tells the caller how much data the figures rest on
type ShopifyDataSummary struct {
	OrdersAnalyzed    int    `json:"orders_analyzed"`
	CustomersAnalyzed int    `json:"customers_analyzed"`
	SampleWindow      string `json:"sample_window"`
}

type LTVCACResponse struct {
	LTV            float64                `json:"ltv"`
	CAC            float64                `json:"cac"`
	Recommendation string                 `json:"recommendation"`
	Details        analytics.LTVCACResult `json:"details"`
	ShopifyData    ShopifyDataSummary     `json:"shopify_data"`
}

// Analyze computes LTV and CAC from the recent orders and the first customer page
func (s *LTVCACService) Analyze(ctx context.Context, req LTVCACRequest) (*LTVCACResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	if req.AdSpend < 0 {
		return nil, &apperrors.ErrValidation{
			Message: "adSpend cannot be negative",
			Fields:  map[string]string{"adSpend": "must be zero or positive"},
		}
	}

	customers, orders, err := fetchCustomersAndOrders(ctx, client, shopify.MaxPageSize)
	if err != nil {
		return nil, err
	}
	result := analytics.AnalyzeLTVCAC(orders, customers, req.AdSpend, s.now())

	s.logger.Info("LTV:CAC analyzed",
		zap.String("shop", client.ShopDomain()),
		zap.Float64("ltv", result.LTV),
		zap.Float64("cac", result.CAC),
		zap.Int("orders", len(orders)),
		zap.Int("customers", len(customers)),
	)
	return &LTVCACResponse{
		LTV:            result.LTV,
		CAC:            result.CAC,
		Recommendation: result.Recommendation,
		Details:        result,
		ShopifyData: ShopifyDataSummary{
			OrdersAnalyzed:    len(orders),
			CustomersAnalyzed: len(customers),
			SampleWindow:      analytics.SampleWindow(len(orders)),
		},
	}, nil
}
