package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OAuthStateTTL bounds how long a merchant has to approve the app
const OAuthStateTTL = 10 * time.Minute

const oauthStatePrefix = "oauth:state:"

// StateStore remembers issued OAuth state nonces until the callback consumes them
type StateStore interface {
	Save(ctx context.Context, state, shop string) error
	// Consume returns the shop the state was issued for and forgets it.
	// ok is false for unknown or expired states.
	Consume(ctx context.Context, state string) (shop string, ok bool, err error)
}

type redisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client) StateStore {
	return &redisStateStore{client: client, ttl: OAuthStateTTL}
}

func (s *redisStateStore) Save(ctx context.Context, state, shop string) error {
	if err := s.client.Set(ctx, oauthStatePrefix+state, shop, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

func (s *redisStateStore) Consume(ctx context.Context, state string) (string, bool, error) {
	shop, err := s.client.GetDel(ctx, oauthStatePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read oauth state: %w", err)
	}
	return shop, true, nil
}
