// Package memory provides in-memory store implementations, used by tests and
// dependency-free development setups.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ethrva/shopfront/internal/domain/basket"
)

var _ basket.Repository = (*BasketRepository)(nil)

// BasketRepository implements basket.Repository with a mutex-guarded map.
type BasketRepository struct {
	mu      sync.RWMutex
	baskets map[string]*basket.CustomerBasket
}

// NewBasketRepository returns an empty in-memory basket repository.
func NewBasketRepository() *BasketRepository {
	return &BasketRepository{baskets: make(map[string]*basket.CustomerBasket)}
}

func copyBasket(b *basket.CustomerBasket) *basket.CustomerBasket {
	cp := basket.CustomerBasket{CustomerID: b.CustomerID}
	cp.Items = append(cp.Items, b.Items...)
	return &cp
}

// Get returns the customer's basket, or an empty basket when none is stored.
func (r *BasketRepository) Get(_ context.Context, customerID string) (*basket.CustomerBasket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.baskets[customerID]
	if !ok {
		return basket.New(customerID), nil
	}
	return copyBasket(b), nil
}

// AddItem merges the item into the basket, creating the basket when absent.
func (r *BasketRepository) AddItem(_ context.Context, customerID string, item basket.Item) (*basket.CustomerBasket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.baskets[customerID]
	if !ok {
		b = basket.New(customerID)
		r.baskets[customerID] = b
	}
	b.AddItem(item)
	return copyBasket(b), nil
}

// UpdateQuantity sets an item's quantity; zero removes the item.
func (r *BasketRepository) UpdateQuantity(_ context.Context, customerID, productID string, quantity int) (*basket.UpdateQuantityResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.baskets[customerID]
	if !ok {
		return nil, basket.ErrBasketNotFound
	}

	// Mutate a copy so a rejected update leaves stored state unchanged.
	updated := copyBasket(b)
	item, err := updated.UpdateQuantity(productID, quantity)
	if err != nil {
		return nil, err
	}
	r.baskets[customerID] = updated

	return &basket.UpdateQuantityResult{
		Item:   *item,
		Basket: *copyBasket(updated),
	}, nil
}

// Delete removes the basket and reports whether one existed.
func (r *BasketRepository) Delete(_ context.Context, customerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.baskets[customerID]
	delete(r.baskets, customerID)
	return ok, nil
}

// CustomerIDs enumerates all customers with a stored basket, sorted for
// deterministic output.
func (r *BasketRepository) CustomerIDs(context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.baskets))
	for id := range r.baskets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
