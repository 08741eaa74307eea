package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for order validation.
var (
	ErrNilOrder        = errors.New("order required")
	ErrNoItems         = errors.New("order has no items")
	ErrBlankCustomerID = errors.New("customer id required")
)

// InvalidItemError indicates a line item fails its field rules.
type InvalidItemError struct {
	ProductID string
	Reason    string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid order item %q: %s", e.ProductID, e.Reason)
}

// InvalidCustomerDataError indicates a required customer field is blank.
type InvalidCustomerDataError struct {
	Field string
}

func (e *InvalidCustomerDataError) Error() string {
	return fmt.Sprintf("customer field %s is required", e.Field)
}

// Item is a single line of an order, owned exclusively by that order.
type Item struct {
	ID          int64           `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Subtotal returns UnitPrice × Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is an immutable snapshot of a basket plus the customer's shipping and
// contact data, captured at checkout time. ID is assigned by the store.
type Order struct {
	ID    int64  `json:"id"`
	Items []Item `json:"items"`

	CustomerID                string `json:"customerId"`
	CustomerName              string `json:"customerName"`
	CustomerEmail             string `json:"customerEmail"`
	CustomerPhone             string `json:"customerPhone"`
	CustomerAddress           string `json:"customerAddress"`
	CustomerAdditionalAddress string `json:"customerAdditionalAddress"`
	CustomerDistrict          string `json:"customerDistrict"`
	CustomerCity              string `json:"customerCity"`
	CustomerState             string `json:"customerState"`
	CustomerZipCode           string `json:"customerZipCode"`

	CreatedAt time.Time `json:"createdAt"`
}

// Total returns the sum of all item subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Validate checks the order against all business rules, in order: the order
// must be present, must carry at least one item, every item must be complete,
// and every required customer field must be non-blank. CustomerAdditionalAddress
// is optional. It performs no I/O and must pass before any persistence attempt.
func Validate(o *Order) error {
	if o == nil {
		return ErrNilOrder
	}

	if len(o.Items) == 0 {
		return ErrNoItems
	}

	for _, item := range o.Items {
		switch {
		case strings.TrimSpace(item.ProductID) == "":
			return &InvalidItemError{ProductID: item.ProductID, Reason: "product id is blank"}
		case strings.TrimSpace(item.ProductName) == "":
			return &InvalidItemError{ProductID: item.ProductID, Reason: "product name is blank"}
		case item.Quantity <= 0:
			return &InvalidItemError{ProductID: item.ProductID, Reason: "quantity must be greater than 0"}
		case !item.UnitPrice.IsPositive():
			return &InvalidItemError{ProductID: item.ProductID, Reason: "unit price must be greater than 0"}
		}
	}

	required := []struct {
		field string
		value string
	}{
		{"customerId", o.CustomerID},
		{"customerName", o.CustomerName},
		{"customerEmail", o.CustomerEmail},
		{"customerPhone", o.CustomerPhone},
		{"customerAddress", o.CustomerAddress},
		{"customerDistrict", o.CustomerDistrict},
		{"customerCity", o.CustomerCity},
		{"customerState", o.CustomerState},
		{"customerZipCode", o.CustomerZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &InvalidCustomerDataError{Field: f.field}
		}
	}

	return nil
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create validates the order, assigns a store-generated identifier,
	// persists the order together with its items, and returns the persisted
	// entity. Validation failures are returned before any write.
	Create(ctx context.Context, o *Order) (*Order, error)
	// GetByCustomer returns all orders for the customer, newest first.
	// A blank customer id fails with ErrBlankCustomerID.
	GetByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
