package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (r *RedisDenylist) Revoke(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "revoked:"+jti, 1, safeTTL(exp)).Err()
}

func (r *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, "revoked:"+jti).Result()
	switch {
	case err == redis.Nil:
		return false, nil
	case err != nil:
		// fail closed: an unreachable denylist treats the token as revoked
		return true, err
	default:
		return n > 0, nil
	}
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// minimal TTL so the key still disappears on its own
		return time.Minute
	}
	return ttl
}
