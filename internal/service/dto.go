package service

import (
	"strings"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/analytics"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// ShopCredentials travel with every request; nothing is stored server-side
type ShopCredentials struct {
	ShopDomain  string `json:"shopDomain"`
	AccessToken string `json:"accessToken"`
}

// Validate reports which credential fields are missing
func (c ShopCredentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ShopDomain) == "" {
		missing = append(missing, "shopDomain")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		missing = append(missing, "accessToken")
	}
	if len(missing) > 0 {
		return &apperrors.ErrMissingCredentials{Missing: missing}
	}
	return nil
}

func (c ShopCredentials) credentials() shopify.Credentials {
	return shopify.Credentials{ShopDomain: c.ShopDomain, AccessToken: c.AccessToken}
}

// FetchProductsRequest is the body of POST /products/fetch
type FetchProductsRequest struct {
	ShopCredentials
	Limit    int    `json:"limit"`
	PageInfo string `json:"pageInfo"`
	Search   string `json:"search"`
}

// SearchProductsRequest is the body of POST /products/search
type SearchProductsRequest struct {
	ShopCredentials
	analytics.ProductSearchParams
}

// VariantAnalyticsRequest is the body of the variant analytics, AI data and stock status endpoints
type VariantAnalyticsRequest struct {
	ShopCredentials
	ThresholdPercent *float64 `json:"threshold_percent"`
}

// FetchOrdersRequest is the body of POST /orders/fetch
type FetchOrdersRequest struct {
	ShopCredentials
	Limit        int    `json:"limit"`
	PageInfo     string `json:"pageInfo"`
	Status       string `json:"status"`
	CreatedAtMin string `json:"created_at_min"`
}

// FetchCustomersRequest is the body of POST /customers/fetch
type FetchCustomersRequest struct {
	ShopCredentials
	Limit    int    `json:"limit"`
	PageInfo string `json:"pageInfo"`
}

// AnalyticsRequest is the body of the shop-wide analytics endpoints
type AnalyticsRequest struct {
	ShopCredentials
	Limit int `json:"limit"`
	TopN  int `json:"top_n"`
}

// LTVCACRequest is the body of POST /ltv-cac/analyze
type LTVCACRequest struct {
	ShopCredentials
	AdSpend float64 `json:"adSpend"`
}

// AuthInitiateRequest is the body of POST /auth/initiate
type AuthInitiateRequest struct {
	Shop string `json:"shop"`
}

// ExchangeTokenRequest is the body of POST /auth/exchange-token
type ExchangeTokenRequest struct {
	Shop  string `json:"shop"`
	Code  string `json:"code"`
	State string `json:"state"`
}
