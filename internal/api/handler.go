// Package api exposes the basket and checkout flows over HTTP.
package api

import (
	"net/http"

	"github.com/ethrva/shopfront/internal/domain/basket"
	"github.com/ethrva/shopfront/internal/domain/checkout"
	"github.com/ethrva/shopfront/internal/domain/product"
	"github.com/ethrva/shopfront/internal/domain/session"
)

// Handler serves the JSON API, delegating business logic to the injected
// domain collaborators.
type Handler struct {
	baskets  basket.Repository
	products product.Repository
	checkout *checkout.Service
	sessions session.Store
	pepper   []byte
}

// NewHandler constructs a Handler with the required domain dependencies.
// The pepper is used for HMAC hashing of bearer tokens.
func NewHandler(
	baskets basket.Repository,
	products product.Repository,
	checkoutSvc *checkout.Service,
	sessions session.Store,
	pepper []byte,
) *Handler {
	return &Handler{
		baskets:  baskets,
		products: products,
		checkout: checkoutSvc,
		sessions: sessions,
		pepper:   pepper,
	}
}

// Routes returns a mux with all API routes registered. Catalog reads are
// public; basket and checkout routes require a session.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /api/basket", h.authenticate(h.getBasket))
	mux.Handle("POST /api/basket/items", h.authenticate(h.addBasketItem))
	mux.Handle("PUT /api/basket/items", h.authenticate(h.updateBasketItem))
	mux.Handle("DELETE /api/basket", h.authenticate(h.deleteBasket))
	mux.Handle("GET /api/basket/customers", h.authenticate(h.listBasketCustomers))

	mux.Handle("POST /api/checkout", h.authenticate(h.placeOrder))
	mux.Handle("GET /api/orders", h.authenticate(h.listOrders))

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{code}", h.getProduct)

	return mux
}
