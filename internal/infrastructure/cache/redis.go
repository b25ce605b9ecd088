package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lesson-reservations/internal/config"
	domain "lesson-reservations/internal/domain/booking"

	"github.com/go-redis/redis/v8"
)

// availabilityKeyPrefix namespaces the cached availability listings so a full
// invalidation can scan them without touching unrelated keys.
const availabilityKeyPrefix = "availability:age:"

// RedisCache caches availability listings. It is never consulted for
// capacity decisions; registrations always go to the database.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client: rdb,
	}
}

// NewRedisCacheWithConfig builds the cache from the application config.
func NewRedisCacheWithConfig(cfg *config.CacheConfig) *RedisCache {
	return NewRedisCache(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.Password, cfg.DB)
}

func (r *RedisCache) GetAvailableLessons(ctx context.Context, ageGroup string) ([]*domain.AvailableLesson, error) {
	key := availabilityKeyPrefix + ageGroup

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("availability not cached")
		}
		return nil, fmt.Errorf("failed to get availability from cache: %w", err)
	}

	var lessons []*domain.AvailableLesson
	if err := json.Unmarshal([]byte(val), &lessons); err != nil {
		return nil, fmt.Errorf("invalid availability value in cache: %w", err)
	}

	return lessons, nil
}

func (r *RedisCache) SetAvailableLessons(ctx context.Context, ageGroup string, lessons []*domain.AvailableLesson, ttl time.Duration) error {
	key := availabilityKeyPrefix + ageGroup

	data, err := json.Marshal(lessons)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set availability in cache: %w", err)
	}

	return nil
}

// InvalidateAvailability drops every cached availability listing. Called
// after any mutation that can change enrollment counts or the lesson set.
func (r *RedisCache) InvalidateAvailability(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, availabilityKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate availability: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan availability keys: %w", err)
	}
	return nil
}

func (r *RedisCache) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NoopCache satisfies the availability cache contract without storing
// anything. Used when no Redis address is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetAvailableLessons(ctx context.Context, ageGroup string) ([]*domain.AvailableLesson, error) {
	return nil, fmt.Errorf("availability not cached")
}

func (n *NoopCache) SetAvailableLessons(ctx context.Context, ageGroup string, lessons []*domain.AvailableLesson, ttl time.Duration) error {
	return nil
}

func (n *NoopCache) InvalidateAvailability(ctx context.Context) error {
	return nil
}
