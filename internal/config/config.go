package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	AI          AIConfig
	Analytics   AnalyticsConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

// ShopifyConfig holds app-level Shopify settings. Shop domains and access
// tokens are not configuration: they arrive with every request.
type ShopifyConfig struct {
	APIVersion      string
	APIKey          string // SHOPIFY_API_KEY (OAuth client id)
	APISecret       string // SHOPIFY_API_SECRET (OAuth client secret, also signs OAuth callbacks)
	Scopes          string // comma separated, e.g. read_products,read_orders
	RedirectURI     string
	WebhookSecret   string // SHOPIFY_WEBHOOK_SECRET; falls back to APISecret
	UpstreamTimeout time.Duration
}

// AIConfig points at the external classification and strategy services.
// Empty URLs disable the corresponding call.
type AIConfig struct {
	CategoryURL string
	StrategyURL string
	Timeout     time.Duration
}

type AnalyticsConfig struct {
	DefaultStaleThreshold float64 // percent sold per month
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig enables the redis-backed limiter when RedisURL is set.
type RateLimitConfig struct {
	RedisURL    string
	MaxRequests int
	Window      time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-10")
	viper.SetDefault("SHOPIFY_SCOPES", "read_products,read_orders,read_customers,read_inventory")
	viper.SetDefault("UPSTREAM_TIMEOUT", "30s")
	viper.SetDefault("AI_TIMEOUT", "15s")
	viper.SetDefault("DEFAULT_STALE_THRESHOLD", "10")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_MAX", "120")
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.AutomaticEnv()

	upstreamTimeout, err := parseDuration("UPSTREAM_TIMEOUT")
	if err != nil {
		return nil, err
	}
	aiTimeout, err := parseDuration("AI_TIMEOUT")
	if err != nil {
		return nil, err
	}
	rateWindow, err := parseDuration("RATE_LIMIT_WINDOW")
	if err != nil {
		return nil, err
	}

	threshold, err := strconv.ParseFloat(getEnvOrViper("DEFAULT_STALE_THRESHOLD", "10"), 64)
	if err != nil || threshold < 0 {
		return nil, fmt.Errorf("DEFAULT_STALE_THRESHOLD must be a non-negative number")
	}
	rateMax, err := strconv.Atoi(getEnvOrViper("RATE_LIMIT_MAX", "120"))
	if err != nil || rateMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			APIVersion:      getEnvOrViper("SHOPIFY_API_VERSION", "2024-10"),
			APIKey:          strings.TrimSpace(getEnvOrViper("SHOPIFY_API_KEY", "")),
			APISecret:       strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
			Scopes:          strings.TrimSpace(getEnvOrViper("SHOPIFY_SCOPES", "")),
			RedirectURI:     strings.TrimSpace(getEnvOrViper("SHOPIFY_REDIRECT_URI", "")),
			WebhookSecret:   strings.TrimSpace(getEnvOrViper("SHOPIFY_WEBHOOK_SECRET", "")),
			UpstreamTimeout: upstreamTimeout,
		},
		AI: AIConfig{
			CategoryURL: strings.TrimSpace(getEnvOrViper("AI_CATEGORY_URL", "")),
			StrategyURL: strings.TrimSpace(getEnvOrViper("AI_STRATEGY_URL", "")),
			Timeout:     aiTimeout,
		},
		Analytics: AnalyticsConfig{
			DefaultStaleThreshold: threshold,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvOrViper("CORS_ALLOWED_ORIGINS", "")),
		},
		RateLimit: RateLimitConfig{
			RedisURL:    strings.TrimSpace(getEnvOrViper("REDIS_URL", "")),
			MaxRequests: rateMax,
			Window:      rateWindow,
		},
	}

	if cfg.Shopify.WebhookSecret == "" {
		cfg.Shopify.WebhookSecret = cfg.Shopify.APISecret
	}

	return cfg, nil
}

// OAuthConfigured reports whether the OAuth endpoints can be served.
func (c ShopifyConfig) OAuthConfigured() bool {
	return c.APIKey != "" && c.APISecret != ""
}

func parseDuration(key string) (time.Duration, error) {
	raw := getEnvOrViper(key, viper.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (e.g. 30s): %q", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
