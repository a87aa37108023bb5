package weather

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

const currentKey = "current"

// CachedProvider memoizes upstream readings for a TTL so a burst of
// recommendation requests does not hammer the weather API. Failures are
// not cached; the next call retries upstream.
type CachedProvider struct {
	inner Provider
	lru   *expirable.LRU[string, domain.WeatherSnapshot]
}

// NewCachedProvider wraps inner with a TTL cache.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		lru:   expirable.NewLRU[string, domain.WeatherSnapshot](1, nil, ttl),
	}
}

// Current implements Provider.
func (c *CachedProvider) Current(ctx context.Context) (domain.WeatherSnapshot, error) {
	if snap, ok := c.lru.Get(currentKey); ok {
		return snap, nil
	}

	snap, err := c.inner.Current(ctx)
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	c.lru.Add(currentKey, snap)
	return snap, nil
}

// Invalidate drops the cached reading. Used by tests and the admin path.
func (c *CachedProvider) Invalidate() {
	c.lru.Remove(currentKey)
}
