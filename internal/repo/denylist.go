package repo

import (
	"context"
	"time"
)

// TokenDenylist is the revocation extension point. Tokens are stateless
// by default; deployments that need instant revocation plug in a real
// implementation keyed by token id.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NoopDenylist never revokes anything. Used when no Redis address is
// configured, keeping tokens fully stateless.
type NoopDenylist struct{}

func (NoopDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
