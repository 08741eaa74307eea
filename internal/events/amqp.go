package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ethrva/shopfront/internal/domain/order"
)

const orderCreatedRoutingKey = "order.created"

// orderCreatedEvent is the wire shape of an order-created notification.
type orderCreatedEvent struct {
	OrderID    int64     `json:"orderId"`
	CustomerID string    `json:"customerId"`
	ItemCount  int       `json:"itemCount"`
	Total      string    `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AMQPPublisher publishes order events to a durable topic exchange.
type AMQPPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher opens a channel on the given connection and declares the
// exchange. The caller owns the connection; Close releases only the channel.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, errors.Wrapf(err, "declare exchange %s", exchange)
	}

	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// OrderCreated publishes a persistent order-created message.
func (p *AMQPPublisher) OrderCreated(ctx context.Context, o *order.Order) error {
	body, err := json.Marshal(orderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ItemCount:  len(o.Items),
		Total:      o.Total().StringFixed(2),
		CreatedAt:  o.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		orderCreatedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "publish %s", orderCreatedRoutingKey)
	}

	return nil
}

// Close releases the publisher's channel.
func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}
