package service

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/aiservice"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/category"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
)

// Services groups every service the HTTP layer calls
type Services struct {
	Products  *ProductService
	Orders    *OrderService
	Customers *CustomerService
	LTVCAC    *LTVCACService
	Auth      *AuthService
}

// Deps are the optional collaborators of NewServices
type Deps struct {
	// Redis backs the OAuth state store; nil disables state checks
	Redis *redis.Client
	// ShopifyOptions are applied to every per-request Shopify client
	ShopifyOptions []shopify.Option
	// OAuthOptions are applied to the OAuth helper
	OAuthOptions []shopify.OAuthOption
	// Now overrides the clock
	Now func() time.Time
}

// NewServices wires the services from configuration
func NewServices(cfg *config.Config, deps Deps, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	shops := &shopClients{
		opts: append([]shopify.Option{
			shopify.WithAPIVersion(cfg.Shopify.APIVersion),
			shopify.WithTimeout(cfg.Shopify.UpstreamTimeout),
		}, deps.ShopifyOptions...),
		logger: logger,
	}

	ai := aiservice.NewClient(cfg.AI, logger)
	var classifier category.Classifier
	if ai.CategoryConfigured() {
		classifier = ai
	}

	var states StateStore
	if deps.Redis != nil {
		states = NewRedisStateStore(deps.Redis)
	}

	return &Services{
		Products: &ProductService{
			shops:          shops,
			ai:             ai,
			categories:     category.NewResolver(classifier, logger),
			staleThreshold: cfg.Analytics.DefaultStaleThreshold,
			now:            now,
			logger:         logger,
		},
		Orders:    &OrderService{shops: shops, now: now, logger: logger},
		Customers: &CustomerService{shops: shops, now: now, logger: logger},
		LTVCAC:    &LTVCACService{shops: shops, now: now, logger: logger},
		Auth: &AuthService{
			cfg:    cfg.Shopify,
			oauth:  shopify.NewOAuth(cfg.Shopify, deps.OAuthOptions...),
			shops:  shops,
			states: states,
			logger: logger,
		},
	}
}

// shopClients builds one Shopify client per request from the body credentials
type shopClients struct {
	opts   []shopify.Option
	logger *zap.Logger
}

func (f *shopClients) forRequest(creds ShopCredentials) (*shopify.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return shopify.NewClient(creds.credentials(), f.logger, f.opts...), nil
}
