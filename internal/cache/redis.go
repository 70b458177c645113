package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theibericoexperience-dev/last-sub001/config"
	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

type RedisCache struct {
	client    *redis.Client
	toursTTL  time.Duration
	policyTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, toursTTL, policyTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		toursTTL:  toursTTL,
		policyTTL: policyTTL,
	}
}

func (c *RedisCache) GetTours(ctx context.Context) ([]domain.Tour, error) {
	data, err := c.client.Get(ctx, toursKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var tours []domain.Tour
	if err := json.Unmarshal(data, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (c *RedisCache) SetTours(ctx context.Context, tours []domain.Tour) error {
	payload, err := json.Marshal(tours)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, toursKey(), payload, c.toursTTL).Err()
}

// GetPolicy returns (nil, nil) on a cache miss. Only existing policies are
// cached; a missing policy is always re-resolved against the store.
func (c *RedisCache) GetPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error) {
	data, err := c.client.Get(ctx, policyKey(tourID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var policy domain.TourPricingPolicy
	if err := json.Unmarshal(data, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (c *RedisCache) SetPolicy(ctx context.Context, tourID string, policy *domain.TourPricingPolicy) error {
	if policy == nil {
		return nil
	}
	payload, err := json.Marshal(policy)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, policyKey(tourID), payload, c.policyTTL).Err()
}

func toursKey() string {
	return "cache:tours"
}

func policyKey(tourID string) string {
	return fmt.Sprintf("cache:policy:%s", tourID)
}
