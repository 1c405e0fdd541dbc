package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/analytics"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
)

type CustomerService struct {
	shops  *shopClients
	now    func() time.Time
	logger *zap.Logger
}

type CustomerListResponse struct {
	Customers  []domain.Customer  `json:"customers"`
	Pagination shopify.Pagination `json:"pagination"`
	Count      int                `json:"count"`
}

// Fetch returns one page of customers
func (s *CustomerService) Fetch(ctx context.Context, req FetchCustomersRequest) (*CustomerListResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	page, err := client.ListCustomers(ctx, req.Limit, req.PageInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return &CustomerListResponse{Customers: nonNil(page.Customers), Pagination: page.Pagination, Count: len(page.Customers)}, nil
}

type CustomerAnalyticsResponse struct {
	Analytics   analytics.CustomerAnalytics `json:"analytics"`
	Sample      string                      `json:"sample"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// Analytics rolls up a page of customers. Inactivity is judged against the recent order window.
func (s *CustomerService) Analytics(ctx context.Context, req AnalyticsRequest) (*CustomerAnalyticsResponse, error) {
	client, err := s.shops.forRequest(req.ShopCredentials)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = shopify.MaxPageSize
	}

	customers, orders, err := fetchCustomersAndOrders(ctx, client, limit)
	if err != nil {
		return nil, err
	}
	return &CustomerAnalyticsResponse{
		Analytics:   analytics.SummarizeCustomers(customers, orders, s.now(), req.TopN),
		Sample:      fmt.Sprintf("first %d customers, %s", len(customers), analytics.SampleWindow(len(orders))),
		GeneratedAt: s.now(),
	}, nil
}

func fetchCustomersAndOrders(ctx context.Context, client *shopify.Client, limit int) ([]domain.Customer, []domain.Order, error) {
	var (
		customers []domain.Customer
		orders    []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := client.ListCustomers(gctx, limit, "")
		if err != nil {
			return fmt.Errorf("failed to fetch customers: %w", err)
		}
		customers = page.Customers
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
	return customers, orders, nil
}
