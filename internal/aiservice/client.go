package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// ErrNotConfigured is returned when the endpoint for a call has no URL
var ErrNotConfigured = errors.New("ai service not configured")

const serviceName = "ai service"

// Client calls the external category classification and strategy prediction services.
// Both are opaque: responses are returned as raw JSON.
type Client struct {
	categoryURL string
	strategyURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates an AI service client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		categoryURL: strings.TrimSuffix(cfg.CategoryURL, "/"),
		strategyURL: strings.TrimSuffix(cfg.StrategyURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// CategoryConfigured reports whether Classify can be called
func (c *Client) CategoryConfigured() bool {
	return c != nil && c.categoryURL != ""
}

// StrategyConfigured reports whether PredictStrategy can be called
func (c *Client) StrategyConfigured() bool {
	return c != nil && c.strategyURL != ""
}

// Classify asks the classification service for a product's category
func (c *Client) Classify(ctx context.Context, product domain.Product) (json.RawMessage, error) {
	if !c.CategoryConfigured() {
		return nil, ErrNotConfigured
	}
	return c.post(ctx, c.categoryURL, product)
}

// PredictStrategy forwards the metrics payload to the strategy service
func (c *Client) PredictStrategy(ctx context.Context, payload any) (json.RawMessage, error) {
	if !c.StrategyConfigured() {
		return nil, ErrNotConfigured
	}
	return c.post(ctx, c.strategyURL, payload)
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("AI service request failed", zap.Error(err), zap.String("endpoint", endpoint))
		return nil, &apperrors.ErrUpstream{Service: serviceName, Body: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Service: serviceName, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperrors.ErrUpstream{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(raw),
		}
	}
	if !json.Valid(raw) {
		return nil, &apperrors.ErrUpstream{Service: serviceName, StatusCode: resp.StatusCode, Body: "response is not valid JSON"}
	}
	return raw, nil
}
