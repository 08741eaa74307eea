// Package events publishes domain events to the notification subsystem.
package events

import (
	"context"

	"github.com/ethrva/shopfront/internal/domain/order"
)

// Publisher emits events for completed checkouts. Publishing is best effort:
// the checkout flow logs failures and proceeds, since the order is already
// persisted by the time an event is emitted.
type Publisher interface {
	OrderCreated(ctx context.Context, o *order.Order) error
}

// NopPublisher discards all events. Wired when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *order.Order) error { return nil }
