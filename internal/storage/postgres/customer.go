package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethrva/shopfront/internal/domain/customer"
)

const selectProfileSQL = `SELECT id, name, email, phone, address,
		additional_address, district, city, state, zip_code
	FROM customers WHERE id = $1`

const upsertProfileSQL = `INSERT INTO customers (
		id, name, email, phone, address, additional_address,
		district, city, state, zip_code, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		email = EXCLUDED.email,
		phone = EXCLUDED.phone,
		address = EXCLUDED.address,
		additional_address = EXCLUDED.additional_address,
		district = EXCLUDED.district,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip_code = EXCLUDED.zip_code,
		updated_at = now()`

var _ customer.Store = (*CustomerStore)(nil)

// CustomerStore implements customer.Store backed by PostgreSQL.
type CustomerStore struct {
	pool *pgxpool.Pool
}

// NewCustomerStore returns a CustomerStore that uses the given pool.
func NewCustomerStore(pool *pgxpool.Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// Get returns the stored profile, or customer.ErrNotFound.
func (s *CustomerStore) Get(ctx context.Context, id string) (*customer.Profile, error) {
	var p customer.Profile
	err := s.pool.QueryRow(ctx, selectProfileSQL, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address,
		&p.AdditionalAddress, &p.District, &p.City, &p.State, &p.ZipCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting profile %s", id)
	}
	return &p, nil
}

// Update persists the profile, creating it when absent.
func (s *CustomerStore) Update(ctx context.Context, p *customer.Profile) error {
	_, err := s.pool.Exec(ctx, upsertProfileSQL,
		p.ID, p.Name, p.Email, p.Phone, p.Address, p.AdditionalAddress,
		p.District, p.City, p.State, p.ZipCode,
	)
	if err != nil {
		return errors.Wrapf(err, "updating profile %s", p.ID)
	}
	return nil
}
