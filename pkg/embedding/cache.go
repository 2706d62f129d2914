package embedding

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachingProvider memoizes embeddings per (task, text) pair. Query embeddings
// repeat often in a campus assistant (the same handful of questions each
// semester), and every cache hit saves a provider round trip.
type CachingProvider struct {
	inner Provider
	cache *gocache.Cache
}

func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (p *CachingProvider) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	key := taskType + "\x00" + text
	if cached, found := p.cache.Get(key); found {
		return cached.([]float32), nil
	}

	vec, err := p.inner.Embed(ctx, text, taskType)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}
