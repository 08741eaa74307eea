package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Code is the
// customer-facing identifier used when adding an item to a basket.
type Product struct {
	Code     string
	Name     string
	Price    decimal.Decimal
	Category string
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
}
