package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sesa/portal/internal/pkg/logger"
)

// CounterCache keeps hot engagement counters (article likes, resource
// downloads) in Redis so listings don't hammer the counting queries.
// All methods are safe to call with a nil receiver; the cache then
// behaves as a permanent miss.
type CounterCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCounterCache connects to Redis and verifies the connection.
func NewCounterCache(addr, password string, db int, ttl time.Duration) (*CounterCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &CounterCache{client: client, ttl: ttl}, nil
}

func likeKey(articleID int64) string {
	return fmt.Sprintf("article:%d:likes", articleID)
}

func downloadKey(resourceID int64) string {
	return fmt.Sprintf("resource:%d:downloads", resourceID)
}

// GetArticleLikes returns the cached like count for an article.
// The second return value reports whether the counter was present.
func (c *CounterCache) GetArticleLikes(ctx context.Context, articleID int64) (int64, bool) {
	if c == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, likeKey(articleID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetArticleLikes stores the like count for an article
func (c *CounterCache) SetArticleLikes(ctx context.Context, articleID, count int64) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, likeKey(articleID), count, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Int64("article_id", articleID).Msg("Failed to cache like count")
	}
}

// InvalidateArticleLikes drops the cached like count after a toggle
func (c *CounterCache) InvalidateArticleLikes(ctx context.Context, articleID int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, likeKey(articleID)).Err(); err != nil {
		logger.Warn().Err(err).Int64("article_id", articleID).Msg("Failed to invalidate like count")
	}
}

// IncrementDownloads bumps the cached download counter for a resource.
// A missing key is created so repeated downloads stay cheap.
func (c *CounterCache) IncrementDownloads(ctx context.Context, resourceID int64) {
	if c == nil {
		return
	}
	key := downloadKey(resourceID)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		logger.Warn().Err(err).Int64("resource_id", resourceID).Msg("Failed to increment download counter")
		return
	}
	c.client.Expire(ctx, key, c.ttl)
}

// GetDownloads returns the cached download count for a resource
func (c *CounterCache) GetDownloads(ctx context.Context, resourceID int64) (int64, bool) {
	if c == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, downloadKey(resourceID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// Close releases the Redis connection
func (c *CounterCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
