package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const cartKeyPrefix = "cart:"

// cartRepository implements the domain's CartRepository interface on Redis.
// Carts are stored as JSON under "cart:<scope>" with a sliding TTL refreshed
// on every save.
type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(client *redis.Client, cfg *config.Config) repository.CartRepository {
	ttl := 30 * 24 * time.Hour
	if cfg != nil && cfg.Redis != nil && cfg.Redis.CartTTL > 0 {
		ttl = cfg.Redis.CartTTL
	}

	return &cartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Load returns the cart for a scope. A missing key loads as an empty cart.
func (repo *cartRepository) Load(ctx context.Context, scope string) (*entity.Cart, error) {
	payload, err := repo.client.Get(ctx, cartKey(scope)).Result()
	if errors.Is(err, redis.Nil) {
		return &entity.Cart{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart := &entity.Cart{}
	if err := json.Unmarshal([]byte(payload), cart); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart")
	}

	return cart, nil
}

// Save persists the cart for a scope and refreshes its TTL.
func (repo *cartRepository) Save(ctx context.Context, scope string, cart *entity.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "failed to encode cart")
	}

	if err := repo.client.Set(ctx, cartKey(scope), payload, repo.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save cart")
	}

	return nil
}

// Delete drops the cart for a scope. Deleting an absent cart is a no-op.
func (repo *cartRepository) Delete(ctx context.Context, scope string) error {
	if err := repo.client.Del(ctx, cartKey(scope)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete cart")
	}

	return nil
}

func cartKey(scope string) string {
	return cartKeyPrefix + scope
}
