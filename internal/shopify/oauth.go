package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// OAuth drives Shopify's authorization-code grant for one app
type OAuth struct {
	clientID     string
	clientSecret string
	scopes       string
	redirectURI  string
	httpClient   *http.Client
	originFor    func(shop string) string
}

// OAuthOption customises OAuth
type OAuthOption func(*OAuth)

// WithOAuthHTTPClient sets the client used for the token exchange
func WithOAuthHTTPClient(hc *http.Client) OAuthOption {
	return func(o *OAuth) { o.httpClient = hc }
}

// WithOAuthOrigin overrides https://<shop> as the OAuth origin
func WithOAuthOrigin(origin string) OAuthOption {
	return func(o *OAuth) {
		origin = strings.TrimSuffix(origin, "/")
		o.originFor = func(string) string { return origin }
	}
}

// NewOAuth builds the OAuth helper from app configuration
func NewOAuth(cfg config.ShopifyConfig, opts ...OAuthOption) *OAuth {
	o := &OAuth{
		clientID:     cfg.APIKey,
		clientSecret: cfg.APISecret,
		scopes:       cfg.Scopes,
		redirectURI:  cfg.RedirectURI,
		originFor:    func(shop string) string { return "https://" + shop },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OAuth) config(shop string) *oauth2.Config {
	origin := o.originFor(shop)
	return &oauth2.Config{
		ClientID:     o.clientID,
		ClientSecret: o.clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   origin + "/admin/oauth/authorize",
			TokenURL:  origin + "/admin/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: o.redirectURI,
		// Shopify wants a comma separated scope list, so it travels as a single element
		Scopes: []string{o.scopes},
	}
}

// AuthorizeURL is where the merchant approves the app
func (o *OAuth) AuthorizeURL(shop, state string) string {
	return o.config(NormalizeShopDomain(shop)).AuthCodeURL(state)
}

// TokenResult is a permanent offline access token
type TokenResult struct {
	AccessToken string `json:"accessToken"`
	Scope       string `json:"scope"`
}

// Exchange trades an authorization code for an access token
func (o *OAuth) Exchange(ctx context.Context, shop, code string) (*TokenResult, error) {
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}
	tok, err := o.config(NormalizeShopDomain(shop)).Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &apperrors.ErrUpstream{
				Service:    serviceName,
				StatusCode: retrieveErr.Response.StatusCode,
				Status:     http.StatusText(retrieveErr.Response.StatusCode),
				Body:       string(retrieveErr.Body),
			}
		}
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	scope, _ := tok.Extra("scope").(string)
	return &TokenResult{AccessToken: tok.AccessToken, Scope: scope}, nil
}
