// Package cache is a generic string-keyed result cache with per-entry TTLs.
// Values are stored as JSON. The cache has no knowledge of entity semantics;
// key schemes belong to the callers.
package cache

import (
	"context"
	"time"
)

// Cache is the result cache contract. Get reports a miss with (false, nil);
// Set overwrites unconditionally; Delete is idempotent. DeletePrefix removes
// every key under a prefix and backs coarse invalidation.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
