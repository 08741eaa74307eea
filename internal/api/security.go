package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ethrva/shopfront/internal/domain/session"
)

// customerIDKey is the context key for the authenticated customer id.
type customerIDKey struct{}

// customerIDFromContext extracts the authenticated customer id. The empty
// string means the request did not pass through authenticate.
func customerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey{}).(string); ok {
		return id
	}
	return ""
}

// authenticate resolves the bearer session token to a customer id and stores
// it in the request context. The token is HMAC-hashed with the configured
// pepper before lookup; a constant-time comparison guards against a store
// returning a stale or wrong row.
func (h *Handler) authenticate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}

		hash := session.HashToken(h.pepper, token)
		s, err := h.sessions.FindByTokenHash(r.Context(), hash)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "invalid session")
			return
		}

		if subtle.ConstantTimeCompare([]byte(hash), []byte(s.TokenHash)) != 1 {
			writeError(w, r, http.StatusUnauthorized, "invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey{}, s.CustomerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}
