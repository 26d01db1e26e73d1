package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hearthwood/site/internal/models"
)

// Resolver answers "who is this, if anyone?" for an opaque session
// credential. A (nil, nil) return means no identity; an error means the
// upstream could not be consulted. Callers must treat both the same for
// access decisions.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*models.Identity, error)
}

type cacheEntry struct {
	identity  *models.Identity
	expiresAt time.Time
}

// IdentityCache deduplicates concurrent identity resolutions that share a
// request key, so several checks within one request chain trigger a single
// upstream call. Entries expire after a short fixed TTL regardless of use;
// resolver failures are never cached, so a retry hits upstream again.
//
// Keys must incorporate the credential, never the URL alone: two requests
// to the same URL under different sessions must not observe each other's
// entries. This is a performance optimization, not a security boundary.
type IdentityCache struct {
	resolver Resolver
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewIdentityCache creates a cache over the given resolver. ttl bounds how
// long a resolved identity is reused; a few seconds is expected.
func NewIdentityCache(resolver Resolver, ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		resolver: resolver,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
	}
}

// GetOrResolve returns the identity for the credential, consulting the
// cache first. Concurrent callers with the same key share one in-flight
// resolution. A successful result (including "no identity") is cached for
// the TTL; errors are returned uncached.
func (c *IdentityCache) GetOrResolve(ctx context.Context, key, credential string) (*models.Identity, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.identity, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		identity, err := c.resolver.Resolve(ctx, credential)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{identity: identity, expiresAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return identity, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Identity), nil
}

// StartJanitor evicts expired entries with interval until ctx is done,
// bounding memory growth between bursts of traffic.
func (c *IdentityCache) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				c.mu.Lock()
				for k, e := range c.entries {
					if now.After(e.expiresAt) {
						delete(c.entries, k)
					}
				}
				c.mu.Unlock()
			}
		}
	}()
}

// size reports the current entry count, for tests.
func (c *IdentityCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
