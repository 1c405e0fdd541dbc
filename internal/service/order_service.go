package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/analytics"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
)

type OrderService struct {
	shops  *shopClients
	now    func() time.Time
	logger *zap.Logger
}

type OrderListResponse struct {
	Orders     []domain.Order     `json:"orders"`
	Pagination shopify.Pagination `json:"pagination"`
	Count      int                `json:"count"`
}

// Fetch returns one page of orders
func (s *OrderService) Fetch(ctx context.Context, req FetchOrdersRequest) (*OrderListResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	page, err := client.ListOrders(ctx, shopify.OrderListOptions{
		Limit:        req.Limit,
		PageInfo:     req.PageInfo,
		Status:       req.Status,
		CreatedAtMin: req.CreatedAtMin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return &OrderListResponse{Orders: nonNil(page.Orders), Pagination: page.Pagination, Count: len(page.Orders)}, nil
}

type OrderAnalyticsResponse struct {
	Analytics   analytics.OrderAnalytics `json:"analytics"`
	Sample      string                   `json:"sample"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// Analytics rolls up the recent order window
func (s *OrderService) Analytics(ctx context.Context, req AnalyticsRequest) (*OrderAnalyticsResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = shopify.MaxPageSize
	}
	page, err := client.ListOrders(ctx, shopify.OrderListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	s.logger.Debug("Order analytics computed",
		zap.String("shop", client.ShopDomain()),
		zap.Int("orders", len(page.Orders)),
	)
	return &OrderAnalyticsResponse{
		Analytics:   analytics.SummarizeOrders(page.Orders, req.TopN),
		Sample:      analytics.SampleWindow(len(page.Orders)),
		GeneratedAt: s.now(),
	}, nil
}
