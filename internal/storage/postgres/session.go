package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethrva/shopfront/internal/domain/session"
)

const selectSessionSQL = `SELECT token_hash, customer_id
	FROM sessions WHERE token_hash = $1`

const upsertSessionSQL = `INSERT INTO sessions (token_hash, customer_id)
	VALUES ($1, $2)
	ON CONFLICT (token_hash) DO UPDATE SET customer_id = EXCLUDED.customer_id`

var _ session.Store = (*SessionRepository)(nil)

// SessionRepository provides session lookups backed by PostgreSQL.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a SessionRepository that uses the given pool.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// FindByTokenHash looks up a session by its HMAC-SHA256 token hash.
func (r *SessionRepository) FindByTokenHash(ctx context.Context, hash string) (*session.Session, error) {
	var s session.Session
	err := r.pool.QueryRow(ctx, selectSessionSQL, hash).Scan(&s.TokenHash, &s.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "finding session by hash")
	}
	return &s, nil
}

// Upsert stores a session token hash for a customer. Used by the seed tool.
func (r *SessionRepository) Upsert(ctx context.Context, s session.Session) error {
	if _, err := r.pool.Exec(ctx, upsertSessionSQL, s.TokenHash, s.CustomerID); err != nil {
		return errors.Wrapf(err, "upserting session for %s", s.CustomerID)
	}
	return nil
}
