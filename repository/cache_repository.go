package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized illustration results. A miss is not an
// error: Get reports found=false.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
