package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no session matches a token hash.
var ErrNotFound = errors.New("session not found")

// Session maps a hashed bearer token to an authenticated customer.
type Session struct {
	TokenHash  string
	CustomerID string
}

// Store provides lookup of sessions by their HMAC-SHA256 token hash.
type Store interface {
	FindByTokenHash(ctx context.Context, hash string) (*Session, error)
}

// HashToken computes the hex-encoded HMAC-SHA256 of a bearer token under the
// given pepper. Only the hash is ever stored or compared.
func HashToken(pepper []byte, token string) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
