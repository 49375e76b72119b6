// Package revocation holds the set of token ids that may no longer be used.
// Entries live until the token they name would have expired anyway.
package revocation

import (
	"context"
	"time"
)

type Store interface {
	Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
