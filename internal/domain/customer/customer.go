package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no profile is stored for a customer.
var ErrNotFound = errors.New("customer profile not found")

// Profile holds a customer's contact and shipping data. The checkout flow
// merges submitted values over the stored profile before placing an order.
type Profile struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Address           string
	AdditionalAddress string
	District          string
	City              string
	State             string
	ZipCode           string
}

// Store defines persistence of customer profiles.
type Store interface {
	Get(ctx context.Context, id string) (*Profile, error)
	// Update persists the profile, creating it when absent.
	Update(ctx context.Context, p *Profile) error
}
