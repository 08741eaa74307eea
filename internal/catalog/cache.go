// Package catalog provides a lifecycle-scoped read cache in front of the
// product repository, replacing what would otherwise be a process-wide
// static product list.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/ethrva/shopfront/internal/domain/product"
)

const (
	minFilterCapacity = 1024
	filterFPR         = 0.001
)

var _ product.Repository = (*Cache)(nil)

type entry struct {
	product product.Product
	expires time.Time
}

// Cache wraps a product repository with a bloom filter of known product codes
// and a TTL'd positive cache. The filter rejects lookups for codes that did
// not exist at the last Refresh without touching the backing store; bloom
// filters have no false negatives, so a known code is never rejected.
type Cache struct {
	repo product.Repository
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	filter  *bloom.BloomFilter
	entries map[string]entry
}

// NewCache builds a Cache and performs the initial Refresh.
func NewCache(ctx context.Context, repo product.Repository, ttl time.Duration) (*Cache, error) {
	c := &Cache{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh rebuilds the code filter from the backing repository and drops all
// cached entries. Call it after catalog changes (new products are invisible
// to GetByCode until the next Refresh).
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}

	capacity := uint(len(products))
	if capacity < minFilterCapacity {
		capacity = minFilterCapacity
	}
	filter := bloom.NewWithEstimates(capacity, filterFPR)
	for _, p := range products {
		filter.AddString(p.Code)
	}

	c.mu.Lock()
	c.filter = filter
	c.entries = make(map[string]entry, len(products))
	c.mu.Unlock()

	return nil
}

// AutoRefresh launches a goroutine that calls Refresh at the given interval
// until ctx is cancelled, so products added after startup become visible to
// GetByCode. Refresh failures are ignored; the previous filter stays active.
func (c *Cache) AutoRefresh(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.Refresh(ctx)
			}
		}
	}()
}

// GetByCode returns the product with the given code, consulting the filter
// and the positive cache before the backing repository.
func (c *Cache) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	c.mu.RLock()
	known := c.filter.TestString(code)
	e, cached := c.entries[code]
	c.mu.RUnlock()

	if !known {
		return nil, product.ErrNotFound
	}
	if cached && c.now().Before(e.expires) {
		p := e.product
		return &p, nil
	}

	p, err := c.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[code] = entry{product: *p, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()

	cp := *p
	return &cp, nil
}

// List delegates to the backing repository.
func (c *Cache) List(ctx context.Context) ([]product.Product, error) {
	return c.repo.List(ctx)
}
