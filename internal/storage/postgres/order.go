package postgres

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethrva/shopfront/internal/domain/order"
)

const insertOrderSQL = `INSERT INTO orders (
		customer_id, customer_name, customer_email, customer_phone,
		customer_address, customer_additional_address, customer_district,
		customer_city, customer_state, customer_zip_code
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at`

const insertOrderItemSQL = `INSERT INTO order_items (
		order_id, product_id, product_name, unit_price, quantity
	) VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

const selectOrdersSQL = `SELECT
		o.id, o.customer_id, o.customer_name, o.customer_email, o.customer_phone,
		o.customer_address, o.customer_additional_address, o.customer_district,
		o.customer_city, o.customer_state, o.customer_zip_code, o.created_at,
		i.id, i.product_id, i.product_name, i.unit_price, i.quantity
	FROM orders o
	JOIN order_items i ON i.order_id = o.id
	WHERE o.customer_id = $1
	ORDER BY o.id DESC, i.id ASC`

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. An order
// and its items are written in one transaction, so a failed insert leaves no
// partial order behind.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create validates the order, persists it with its items, and returns the
// persisted entity including store-assigned identifiers.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := order.Validate(o); err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created := *o
	created.Items = make([]order.Item, len(o.Items))
	copy(created.Items, o.Items)

	err = tx.QueryRow(ctx, insertOrderSQL,
		o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, o.CustomerAdditionalAddress, o.CustomerDistrict,
		o.CustomerCity, o.CustomerState, o.CustomerZipCode,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "inserting order")
	}

	for i := range created.Items {
		item := &created.Items[i]
		err = tx.QueryRow(ctx, insertOrderItemSQL,
			created.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "inserting order item %s", item.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit transaction")
	}

	return &created, nil
}

// GetByCustomer returns all orders for the customer with their items,
// newest first.
func (r *OrderRepository) GetByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, order.ErrBlankCustomerID
	}

	rows, err := r.pool.Query(ctx, selectOrdersSQL, customerID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying orders for %s", customerID)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var (
			o    order.Order
			item order.Item
		)
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.CustomerAddress, &o.CustomerAdditionalAddress, &o.CustomerDistrict,
			&o.CustomerCity, &o.CustomerState, &o.CustomerZipCode, &o.CreatedAt,
			&item.ID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scanning order row")
		}

		// Rows are ordered by order id, so items of one order are adjacent.
		if n := len(orders); n > 0 && orders[n-1].ID == o.ID {
			orders[n-1].Items = append(orders[n-1].Items, item)
			continue
		}
		o.Items = append(o.Items, item)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading order rows")
	}

	return orders, nil
}
