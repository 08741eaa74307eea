// Package redis implements the basket repository on top of Redis: one JSON
// value per customer, keyed by customer id.
package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-faster/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ethrva/shopfront/internal/domain/basket"
)

const basketKeyPrefix = "basket:"

var _ basket.Repository = (*BasketRepository)(nil)

// BasketRepository persists customer baskets in Redis. Every mutation writes
// the full updated basket before returning, so readers never observe a
// partially applied change. A zero TTL keeps baskets forever.
type BasketRepository struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewBasketRepository returns a BasketRepository using the given client.
func NewBasketRepository(rdb *goredis.Client, ttl time.Duration) *BasketRepository {
	return &BasketRepository{rdb: rdb, ttl: ttl}
}

func basketKey(customerID string) string {
	return basketKeyPrefix + customerID
}

// Get returns the customer's basket, or an empty basket when none is stored.
func (r *BasketRepository) Get(ctx context.Context, customerID string) (*basket.CustomerBasket, error) {
	b, err := r.load(ctx, customerID)
	if errors.Is(err, goredis.Nil) {
		return basket.New(customerID), nil
	}
	return b, err
}

// AddItem merges the item into the basket, creating the basket when absent.
func (r *BasketRepository) AddItem(ctx context.Context, customerID string, item basket.Item) (*basket.CustomerBasket, error) {
	b, err := r.load(ctx, customerID)
	if errors.Is(err, goredis.Nil) {
		b = basket.New(customerID)
	} else if err != nil {
		return nil, err
	}

	b.AddItem(item)
	if err := r.save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateQuantity sets an item's quantity; zero removes the item. Failures
// leave the stored basket unchanged.
func (r *BasketRepository) UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) (*basket.UpdateQuantityResult, error) {
	b, err := r.load(ctx, customerID)
	if errors.Is(err, goredis.Nil) {
		return nil, basket.ErrBasketNotFound
	}
	if err != nil {
		return nil, err
	}

	item, err := b.UpdateQuantity(productID, quantity)
	if err != nil {
		return nil, err
	}

	if err := r.save(ctx, b); err != nil {
		return nil, err
	}

	return &basket.UpdateQuantityResult{Item: *item, Basket: *b}, nil
}

// Delete removes the basket and reports whether one existed.
func (r *BasketRepository) Delete(ctx context.Context, customerID string) (bool, error) {
	n, err := r.rdb.Del(ctx, basketKey(customerID)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "delete basket %s", customerID)
	}
	return n > 0, nil
}

// CustomerIDs enumerates all customers with a stored basket via SCAN.
func (r *BasketRepository) CustomerIDs(ctx context.Context) ([]string, error) {
	var ids []string

	iter := r.rdb.Scan(ctx, 0, basketKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), basketKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "scan basket keys")
	}

	return ids, nil
}

// load reads and decodes a stored basket. It returns goredis.Nil unchanged
// when the key is absent so callers can distinguish missing from broken.
func (r *BasketRepository) load(ctx context.Context, customerID string) (*basket.CustomerBasket, error) {
	data, err := r.rdb.Get(ctx, basketKey(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, goredis.Nil
		}
		return nil, errors.Wrapf(err, "get basket %s", customerID)
	}

	var b basket.CustomerBasket
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrapf(err, "decode basket %s", customerID)
	}
	return &b, nil
}

func (r *BasketRepository) save(ctx context.Context, b *basket.CustomerBasket) error {
	data, err := json.Marshal(b)
	if err != nil {
		return errors.Wrapf(err, "encode basket %s", b.CustomerID)
	}

	if err := r.rdb.Set(ctx, basketKey(b.CustomerID), data, r.ttl).Err(); err != nil {
		return errors.Wrapf(err, "store basket %s", b.CustomerID)
	}
	return nil
}
