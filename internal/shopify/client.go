package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

const (
	defaultAPIVersion = "2024-10"
	defaultTimeout    = 30 * time.Second
	serviceName       = "shopify"
)

// Credentials identify one merchant store. They come from the request body and
// live only as long as the request that carried them.
type Credentials struct {
	ShopDomain  string
	AccessToken string
}

// Client performs authenticated GET requests against the Shopify Admin REST API
type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	logger      *zap.Logger
}

// Option customises a Client
type Option func(*Client)

// WithAPIVersion pins the Admin API version (e.g. 2024-10)
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithTimeout bounds every upstream call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides https://<shop> as the API origin
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewClient creates a Shopify REST client for one store
func NewClient(creds Credentials, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	shopDomain := NormalizeShopDomain(creds.ShopDomain)

	c := &Client{
		shopDomain:  shopDomain,
		accessToken: creds.AccessToken,
		apiVersion:  defaultAPIVersion,
		baseURL:     "https://" + shopDomain,
		timeout:     defaultTimeout,
		httpClient:  &http.Client{},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeShopDomain removes https://, http://, and trailing slashes
func NormalizeShopDomain(shopDomain string) string {
	shopDomain = strings.TrimSpace(shopDomain)
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	return strings.TrimSuffix(shopDomain, "/")
}

// ShopDomain returns the normalized store domain
func (c *Client) ShopDomain() string {
	return c.shopDomain
}

// Response is a successful Shopify answer: the raw JSON body plus headers
type Response struct {
	Body   json.RawMessage
	Header http.Header
}

// Pagination parses the Link header of the response
func (r *Response) Pagination() Pagination {
	return ParseLinkHeader(r.Header.Get("Link"))
}

// Get fetches an Admin API resource path such as "products.json"
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shopify request failed",
			zap.String("shop", c.shopDomain),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &apperrors.ErrUpstream{Service: serviceName, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Shopify request",
		zap.String("shop", c.shopDomain),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.ErrUpstream{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return &Response{Body: body, Header: resp.Header}, nil
}

// getInto fetches path and decodes the body into out
func (c *Client) getInto(ctx context.Context, path string, query url.Values, out interface{}) (*Response, error) {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}
	return resp, nil
}
