package basket

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrBasketNotFound is returned when a customer has no stored basket.
	ErrBasketNotFound = errors.New("basket not found")
	// ErrItemNotFound is returned when a basket has no item with the requested product.
	ErrItemNotFound = errors.New("basket item not found")
	// ErrInvalidQuantity is returned when a quantity update is negative.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// Item is a single product line in a customer's basket, priced at the time
// it was added.
type Item struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns UnitPrice × Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerBasket holds a customer's in-progress selection. ProductID is
// unique within Items.
type CustomerBasket struct {
	CustomerID string `json:"customerId"`
	Items      []Item `json:"items"`
}

// New returns an empty basket for the given customer.
func New(customerID string) *CustomerBasket {
	return &CustomerBasket{CustomerID: customerID}
}

// Total returns the sum of all item subtotals.
func (b *CustomerBasket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AddItem merges the incoming item into the basket. When an item with the
// same ProductID already exists its quantity is incremented by the incoming
// quantity; otherwise the item is appended.
func (b *CustomerBasket) AddItem(item Item) {
	for i := range b.Items {
		if b.Items[i].ProductID == item.ProductID {
			b.Items[i].Quantity += item.Quantity
			return
		}
	}
	b.Items = append(b.Items, item)
}

// UpdateQuantity sets the quantity of the item with the given product.
// A quantity of zero removes the item from the basket. The returned item
// reflects the state after the update (quantity zero for a removed item).
func (b *CustomerBasket) UpdateQuantity(productID string, quantity int) (*Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	for i := range b.Items {
		if b.Items[i].ProductID != productID {
			continue
		}

		if quantity == 0 {
			removed := b.Items[i]
			removed.Quantity = 0
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return &removed, nil
		}

		b.Items[i].Quantity = quantity
		updated := b.Items[i]
		return &updated, nil
	}

	return nil, ErrItemNotFound
}

// UpdateQuantityResult pairs the updated item with the basket state after
// the update.
type UpdateQuantityResult struct {
	Item   Item
	Basket CustomerBasket
}

// Repository defines key-value persistence of customer baskets. All mutating
// operations durably persist the updated basket before returning.
type Repository interface {
	// Get returns the customer's basket, or an empty basket when none is stored.
	Get(ctx context.Context, customerID string) (*CustomerBasket, error)
	// AddItem merges the item into the customer's basket, creating the basket
	// when it does not exist yet, and returns the updated basket.
	AddItem(ctx context.Context, customerID string, item Item) (*CustomerBasket, error)
	// UpdateQuantity sets an item's quantity (zero removes the item). It fails
	// with ErrBasketNotFound or ErrItemNotFound without modifying stored state.
	UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) (*UpdateQuantityResult, error)
	// Delete removes the whole basket and reports whether one existed.
	Delete(ctx context.Context, customerID string) (bool, error)
	// CustomerIDs enumerates all customers with a stored basket.
	CustomerIDs(ctx context.Context) ([]string, error)
}
