package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethrva/shopfront/internal/domain/product"
)

const listProductsSQL = `SELECT code, name, price, category
	FROM products ORDER BY code`

const selectProductSQL = `SELECT code, name, price, category
	FROM products WHERE code = $1`

const upsertProductSQL = `INSERT INTO products (code, name, price, category)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (code) DO UPDATE SET
		name = EXCLUDED.name,
		price = EXCLUDED.price,
		category = EXCLUDED.category`

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all catalog products ordered by code.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "listing products")
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Price, &p.Category); err != nil {
			return nil, errors.Wrap(err, "scanning product row")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading product rows")
	}

	return products, nil
}

// GetByCode returns a single product, or product.ErrNotFound.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	var p product.Product
	err := r.pool.QueryRow(ctx, selectProductSQL, code).Scan(&p.Code, &p.Name, &p.Price, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting product %s", code)
	}
	return &p, nil
}

// Upsert inserts or updates a catalog product. Used by the seed tool.
func (r *ProductRepository) Upsert(ctx context.Context, p product.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL, p.Code, p.Name, p.Price, p.Category)
	if err != nil {
		return errors.Wrapf(err, "upserting product %s", p.Code)
	}
	return nil
}
