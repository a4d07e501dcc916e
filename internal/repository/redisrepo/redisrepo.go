package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationCache is a read-through cache in front of the durable denylist.
// A cache miss is not an answer; callers fall back to the database. A cache
// hit short-circuits the lookup for the hot path (every refresh call).
type RevocationCache struct {
	client *redis.Client
}

func NewRevocationCache(client *redis.Client) *RevocationCache {
	return &RevocationCache{
		client: client,
	}
}

func (c *RevocationCache) key(jti string) string {
	return fmt.Sprintf("revoked:jti:%s", jti)
}

// MarkRevoked caches the jti until the token would have expired anyway.
func (c *RevocationCache) MarkRevoked(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || c.client == nil || ttl <= 0 {
		return nil
	}

	return c.client.Set(ctx, c.key(jti), "1", ttl).Err()
}

// IsRevoked returns (true, nil) on a cache hit and (false, nil) on a miss.
// Errors are returned so the caller can decide to fall through to the DB.
func (c *RevocationCache) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	_, err := c.client.Get(ctx, c.key(jti)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check revocation cache: %w", err)
	}

	return true, nil
}
