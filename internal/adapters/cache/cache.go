package cache

import (
	"context"
	"time"
)

// AuditCache stores collaborator responses between audit runs so repeat
// audits of the same wallet skip the paginated fetch. Implementations must
// treat misses and errors the same way: return ok=false and let the caller
// refetch.
type AuditCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// NoOpCache is the fallback used when no Redis is configured. Every lookup
// misses.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (NoOpCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}
