package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pesokrava/bugstore/internal/domain"
)

const bestCustomersKeysSet = "report:best:cache_keys"

// RedisCache caches report results. Misses are reported as domain.ErrNotFound.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis report cache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Customer revenue cache keys and methods

func customerRevenueKey(customerID uuid.UUID) string {
	return fmt.Sprintf("customer:%s:revenue", customerID.String())
}

// GetCustomerRevenue retrieves a cached revenue summary
func (c *RedisCache) GetCustomerRevenue(ctx context.Context, customerID uuid.UUID) (*domain.RevenueSummary, error) {
	var summary domain.RevenueSummary
	if err := c.getJSON(ctx, customerRevenueKey(customerID), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SetCustomerRevenue stores a revenue summary
func (c *RedisCache) SetCustomerRevenue(ctx context.Context, customerID uuid.UUID, summary *domain.RevenueSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, customerRevenueKey(customerID), data, c.ttl).Err()
}

// InvalidateCustomerRevenue removes a customer's revenue summary
func (c *RedisCache) InvalidateCustomerRevenue(ctx context.Context, customerID uuid.UUID) error {
	return c.client.Del(ctx, customerRevenueKey(customerID)).Err()
}

// Best customers ranking cache keys and methods

func bestCustomersKey(limit int) string {
	return fmt.Sprintf("report:best:limit:%d", limit)
}

// GetBestCustomers retrieves a cached ranking for the given size
func (c *RedisCache) GetBestCustomers(ctx context.Context, limit int) ([]*domain.CustomerRevenue, error) {
	var customers []*domain.CustomerRevenue
	if err := c.getJSON(ctx, bestCustomersKey(limit), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// SetBestCustomers stores a ranking and tracks its key in a SET
func (c *RedisCache) SetBestCustomers(ctx context.Context, limit int, customers []*domain.CustomerRevenue) error {
	key := bestCustomersKey(limit)

	data, err := json.Marshal(customers)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, bestCustomersKeysSet, key)
	pipe.Expire(ctx, bestCustomersKeysSet, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateBestCustomers removes every cached ranking using SET-based tracking
func (c *RedisCache) InvalidateBestCustomers(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, bestCustomersKeysSet).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, bestCustomersKeysSet)
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}

// InvalidateCustomer drops everything an order change of this customer affects
func (c *RedisCache) InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error {
	if err := c.InvalidateCustomerRevenue(ctx, customerID); err != nil {
		return err
	}
	return c.InvalidateBestCustomers(ctx)
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(val, dest)
}
