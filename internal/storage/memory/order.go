package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ethrva/shopfront/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository in memory. Identifiers are
// assigned sequentially, matching the relational implementation.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.Order
	nextID int64
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{nextID: 1}
}

// Create validates the order, assigns the next identifier, and stores a copy.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	if err := order.Validate(o); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := *o
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	created.Items = make([]order.Item, len(o.Items))
	for i, item := range o.Items {
		item.ID = r.nextID*1000 + int64(i)
		created.Items[i] = item
	}
	r.nextID++

	r.orders = append(r.orders, created)

	result := created
	return &result, nil
}

// GetByCustomer returns the customer's orders, newest first.
func (r *OrderRepository) GetByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, order.ErrBlankCustomerID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []order.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].CustomerID == customerID {
			result = append(result, r.orders[i])
		}
	}
	return result, nil
}
