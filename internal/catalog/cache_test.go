package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethrva/shopfront/internal/domain/product"
)

type countingRepo struct {
	products []product.Product
	listed   int
	fetched  map[string]int
}

func newCountingRepo(products ...product.Product) *countingRepo {
	return &countingRepo{products: products, fetched: make(map[string]int)}
}

func (r *countingRepo) List(context.Context) ([]product.Product, error) {
	r.listed++
	return r.products, nil
}

func (r *countingRepo) GetByCode(_ context.Context, code string) (*product.Product, error) {
	r.fetched[code]++
	for _, p := range r.products {
		if p.Code == code {
			cp := p
			return &cp, nil
		}
	}
	return nil, product.ErrNotFound
}

func testProduct(code, name string) product.Product {
	return product.Product{
		Code:     code,
		Name:     name,
		Price:    decimal.RequireFromString("5.90"),
		Category: "Fruit",
	}
}

func TestCache_UnknownCodeShortCircuits(t *testing.T) {
	repo := newCountingRepo(testProduct("001", "Oranges"))
	c, err := NewCache(context.Background(), repo, time.Minute)
	require.NoError(t, err)

	_, err = c.GetByCode(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, product.ErrNotFound)
	assert.Zero(t, repo.fetched["does-not-exist"])
}

func TestCache_PositiveHitIsCached(t *testing.T) {
	repo := newCountingRepo(testProduct("001", "Oranges"))
	c, err := NewCache(context.Background(), repo, time.Minute)
	require.NoError(t, err)

	for range 3 {
		p, err := c.GetByCode(context.Background(), "001")
		require.NoError(t, err)
		assert.Equal(t, "Oranges", p.Name)
	}

	assert.Equal(t, 1, repo.fetched["001"])
}

func TestCache_EntryExpires(t *testing.T) {
	repo := newCountingRepo(testProduct("001", "Oranges"))
	c, err := NewCache(context.Background(), repo, time.Minute)
	require.NoError(t, err)

	current := time.Now()
	c.now = func() time.Time { return current }

	_, err = c.GetByCode(context.Background(), "001")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	_, err = c.GetByCode(context.Background(), "001")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.fetched["001"])
}

func TestCache_RefreshPicksUpNewProducts(t *testing.T) {
	repo := newCountingRepo(testProduct("001", "Oranges"))
	c, err := NewCache(context.Background(), repo, time.Minute)
	require.NoError(t, err)

	repo.products = append(repo.products, testProduct("002", "Apples"))

	_, err = c.GetByCode(context.Background(), "002")
	require.ErrorIs(t, err, product.ErrNotFound)

	require.NoError(t, c.Refresh(context.Background()))

	p, err := c.GetByCode(context.Background(), "002")
	require.NoError(t, err)
	assert.Equal(t, "Apples", p.Name)
}
