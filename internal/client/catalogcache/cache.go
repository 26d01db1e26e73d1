// Package catalogcache is the consumer-side cache over the public catalog
// read endpoint. It serves a shared product snapshot to every reader on a
// page, refreshing in the background once the snapshot outlives its
// freshness window, and retrying failed fetches a bounded number of times.
package catalogcache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hearthwood/site/internal/models"
)

// Status describes the cache's fetch state.
type Status string

const (
	// StatusIdle means no fetch has been attempted yet.
	StatusIdle Status = "idle"
	// StatusLoading means the first fetch is in flight.
	StatusLoading Status = "loading"
	// StatusSuccess means the snapshot holds fresh or stale-but-served data.
	StatusSuccess Status = "success"
	// StatusError means the last fetch cycle exhausted its retries. The
	// snapshot still carries the last known-good products if any exist.
	StatusError Status = "error"
)

// Snapshot is an immutable view of the cache at a point in time.
type Snapshot struct {
	Products  []models.Product
	Status    Status
	FetchedAt time.Time
	Err       error
}

// Cache fetches and holds the full product list. One Cache is shared by
// all readers; a snapshot is handed out by value so readers can never
// mutate the cached list.
//
// The cache never refetches on its own timer or on anything resembling
// focus regain; only a stale read, Refetch, or Invalidate triggers a
// network call.
type Cache struct {
	client  *http.Client
	baseURL string

	fresh      time.Duration
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration

	mu         sync.Mutex
	snap       Snapshot
	refreshing bool
}

// New creates a Cache over the catalog read endpoint at baseURL. Defaults:
// 5-minute freshness window, 2 retries with 1s then 2s delay.
func New(client *http.Client, baseURL string) *Cache {
	return &Cache{
		client:     client,
		baseURL:    baseURL,
		fresh:      5 * time.Minute,
		maxRetries: 2,
		baseDelay:  time.Second,
		maxDelay:   2 * time.Second,
		snap:       Snapshot{Status: StatusIdle},
	}
}

// Get returns the current snapshot. The first call fetches synchronously;
// afterwards a read within the freshness window is served from memory, and
// a read past it is served from memory while exactly one background
// refetch runs (stale-while-revalidate).
func (c *Cache) Get(ctx context.Context) Snapshot {
	c.mu.Lock()

	if c.snap.Status == StatusIdle {
		c.snap.Status = StatusLoading
		c.mu.Unlock()
		c.refresh(ctx)
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.snap
	}

	stale := c.snap.Status != StatusLoading && time.Since(c.snap.FetchedAt) > c.fresh
	if stale && !c.refreshing {
		c.refreshing = true
		go func() {
			// The triggering reader may be long gone; the refresh
			// outlives it by design.
			c.refresh(context.Background())
			c.mu.Lock()
			c.refreshing = false
			c.mu.Unlock()
		}()
	}

	defer c.mu.Unlock()
	return c.snap
}

// Refetch forces a synchronous fetch cycle and returns its error, if any.
// The snapshot keeps serving last known-good data on failure.
func (c *Cache) Refetch(ctx context.Context) error {
	c.refresh(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Err
}

// Invalidate marks the snapshot stale so the next Get triggers a refetch.
// Admin mutation flows call this after a successful write.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.FetchedAt = time.Time{}
}

// refresh runs one fetch cycle with bounded retries and installs the
// outcome into the snapshot.
func (c *Cache) refresh(ctx context.Context) {
	products, err := c.fetchWithRetry(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.snap.Status = StatusError
		c.snap.Err = err
		// Last known-good products stay in place.
		return
	}
	c.snap = Snapshot{
		Products:  products,
		Status:    StatusSuccess,
		FetchedAt: time.Now(),
	}
}

// fetchWithRetry fetches the product list, retrying up to maxRetries times
// with a growing delay capped at maxDelay.
func (c *Cache) fetchWithRetry(ctx context.Context) ([]models.Product, error) {
	delay := c.baseDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		products, err := c.fetchOnce(ctx)
		if err == nil {
			return products, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("catalog fetch exhausted retries: %w", lastErr)
}

func (c *Cache) fetchOnce(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog fetch: unexpected status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
