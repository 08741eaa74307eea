// Package checkout converts a customer's basket into an order.
package checkout

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ethrva/shopfront/internal/domain/basket"
	"github.com/ethrva/shopfront/internal/domain/customer"
	"github.com/ethrva/shopfront/internal/domain/order"
	"github.com/ethrva/shopfront/internal/events"
)

// ProfileUpdate carries the contact and shipping fields submitted with a
// checkout. Submitted values always overwrite the stored profile.
type ProfileUpdate struct {
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

// Service orchestrates the checkout flow: profile update, basket read,
// order creation, event publication, and basket clearing.
type Service struct {
	profiles customer.Store
	baskets  basket.Repository
	orders   order.Repository
	events   events.Publisher
}

// NewService creates a checkout Service with the required collaborators.
func NewService(
	profiles customer.Store,
	baskets basket.Repository,
	orders order.Repository,
	publisher events.Publisher,
) *Service {
	return &Service{
		profiles: profiles,
		baskets:  baskets,
		orders:   orders,
		events:   publisher,
	}
}

// Checkout places an order from the customer's current basket.
//
// The profile update and the order creation are two writes against two
// different stores with no shared transaction. The profile write runs first:
// if order creation then fails (an empty basket, say), the customer is left
// with an updated profile and an intact basket, which they can resubmit.
func (s *Service) Checkout(ctx context.Context, customerID string, upd ProfileUpdate) (*order.Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, order.ErrBlankCustomerID
	}

	profile, err := s.profiles.Get(ctx, customerID)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		profile = &customer.Profile{ID: customerID}
	case err != nil:
		return nil, errors.Wrap(err, "load profile")
	}

	applyUpdate(profile, upd)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	b, err := s.baskets.Get(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "read basket")
	}

	items := make([]order.Item, len(b.Items))
	for i, it := range b.Items {
		items[i] = order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
	}

	created, err := s.orders.Create(ctx, &order.Order{
		Items:                     items,
		CustomerID:                profile.ID,
		CustomerName:              profile.Name,
		CustomerEmail:             profile.Email,
		CustomerPhone:             profile.Phone,
		CustomerAddress:           profile.Address,
		CustomerAdditionalAddress: profile.AdditionalAddress,
		CustomerDistrict:          profile.District,
		CustomerCity:              profile.City,
		CustomerState:             profile.State,
		CustomerZipCode:           profile.ZipCode,
	})
	if err != nil {
		// Validation and persistence errors surface to the caller untranslated.
		return nil, err
	}

	// The order exists from here on. Event publication and basket clearing are
	// best effort and must not fail the checkout.
	lg := zctx.From(ctx)
	if err := s.events.OrderCreated(ctx, created); err != nil {
		lg.Warn("publish order created event",
			zap.Int64("order_id", created.ID),
			zap.Error(err),
		)
	}
	if _, err := s.baskets.Delete(ctx, customerID); err != nil {
		lg.Warn("clear basket after checkout",
			zap.Int64("order_id", created.ID),
			zap.Error(err),
		)
	}

	return created, nil
}

// Orders returns the customer's order history, newest first.
func (s *Service) Orders(ctx context.Context, customerID string) ([]order.Order, error) {
	return s.orders.GetByCustomer(ctx, customerID)
}

func applyUpdate(p *customer.Profile, upd ProfileUpdate) {
	p.Name = upd.Name
	p.Email = upd.Email
	p.Phone = upd.Phone
	p.Address = upd.Address
	p.AdditionalAddress = upd.AdditionalAddress
	p.District = upd.District
	p.City = upd.City
	p.State = upd.State
	p.ZipCode = upd.ZipCode
}
