package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// AuthService runs the Shopify OAuth handshake. Tokens are handed back to the
// caller and never stored.
type AuthService struct {
	cfg    config.ShopifyConfig
	oauth  *shopify.OAuth
	shops  *shopClients
	states StateStore // nil when no redis is configured; state is then not checked
	logger *zap.Logger
}

type AuthInitiateResponse struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
	Shop    string `json:"shop"`
}

type TokenResponse struct {
	Shop        string `json:"shop"`
	AccessToken string `json:"accessToken"`
	Scope       string `json:"scope"`
}

type ValidateResponse struct {
	Valid bool        `json:"valid"`
	Shop  domain.Shop `json:"shop"`
}

// Initiate issues a state nonce and the authorize URL for the shop
func (s *AuthService) Initiate(ctx context.Context, req AuthInitiateRequest) (*AuthInitiateResponse, error) {
	if err := s.requireOAuth(); err != nil {
		return nil, err
	}
	shop, err := validShop(req.Shop)
	if err != nil {
		return nil, err
	}

	state := uuid.New().String()
	if s.states != nil {
		if err := s.states.Save(ctx, state, shop); err != nil {
			return nil, err
		}
	}
	s.logger.Info("OAuth initiated", zap.String("shop", shop))
	return &AuthInitiateResponse{AuthURL: s.oauth.AuthorizeURL(shop, state), State: state, Shop: shop}, nil
}

// ExchangeToken trades an authorization code the frontend received for an access token
func (s *AuthService) ExchangeToken(ctx context.Context, req ExchangeTokenRequest) (*TokenResponse, error) {
	if err := s.requireOAuth(); err != nil {
		return nil, err
	}
	shop, err := validShop(req.Shop)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Code) == "" {
		return nil, &apperrors.ErrValidation{
			Message: "code is required",
			Fields:  map[string]string{"code": "required"},
		}
	}
	if req.State != "" {
		if err := s.consumeState(ctx, req.State, shop); err != nil {
			return nil, err
		}
	}
	return s.exchange(ctx, shop, req.Code)
}

// Callback handles Shopify's redirect after the merchant approves the app
func (s *AuthService) Callback(ctx context.Context, query url.Values) (*TokenResponse, error) {
	if err := s.requireOAuth(); err != nil {
		return nil, err
	}
	if !shopify.VerifyQueryHMAC(query, s.cfg.APISecret) {
		return nil, &apperrors.ErrUnauthorized{Message: "invalid OAuth callback signature"}
	}
	shop, err := validShop(query.Get("shop"))
	if err != nil {
		return nil, err
	}
	code := query.Get("code")
	if code == "" {
		return nil, &apperrors.ErrValidation{
			Message: "code is required",
			Fields:  map[string]string{"code": "required"},
		}
	}
	if err := s.consumeState(ctx, query.Get("state"), shop); err != nil {
		return nil, err
	}
	return s.exchange(ctx, shop, code)
}

// Validate checks a token by reading the shop resource
func (s *AuthService) Validate(ctx context.Context, creds ShopCredentials) (*ValidateResponse, error) {
	client, err := s.shops.forRequest(creds)
	if err != nil {
		return nil, err
	}
	shop, err := client.GetShop(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	return &ValidateResponse{Valid: true, Shop: *shop}, nil
}

func (s *AuthService) exchange(ctx context.Context, shop, code string) (*TokenResponse, error) {
	tok, err := s.oauth.Exchange(ctx, shop, code)
	if err != nil {
		s.logger.Warn("OAuth code exchange failed", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	s.logger.Info("OAuth token issued", zap.String("shop", shop), zap.String("scope", tok.Scope))
	return &TokenResponse{Shop: shop, AccessToken: tok.AccessToken, Scope: tok.Scope}, nil
}

func (s *AuthService) consumeState(ctx context.Context, state, shop string) error {
	if s.states == nil {
		return nil
	}
	if state == "" {
		return &apperrors.ErrUnauthorized{Message: "missing OAuth state"}
	}
	issuedFor, ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return err
	}
	if !ok || issuedFor != shop {
		return &apperrors.ErrUnauthorized{Message: "unknown or expired OAuth state"}
	}
	return nil
}

func (s *AuthService) requireOAuth() error {
	if s.cfg.OAuthConfigured() {
		return nil
	}
	var missing []string
	if s.cfg.APIKey == "" {
		missing = append(missing, "SHOPIFY_API_KEY")
	}
	if s.cfg.APISecret == "" {
		missing = append(missing, "SHOPIFY_API_SECRET")
	}
	return &apperrors.ErrNotConfigured{Feature: "Shopify OAuth", Missing: missing}
}

func validShop(raw string) (string, error) {
	shop := shopify.NormalizeShopDomain(raw)
	if !shopify.IsValidShopDomain(shop) {
		return "", &apperrors.ErrValidation{
			Message: "shop must be a <name>.myshopify.com domain",
			Fields:  map[string]string{"shop": "invalid shop domain"},
		}
	}
	return shop, nil
}
