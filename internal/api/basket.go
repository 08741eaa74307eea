package api

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/ethrva/shopfront/internal/domain/basket"
	"github.com/ethrva/shopfront/internal/domain/product"
)

type basketItemDTO struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type basketDTO struct {
	CustomerID string          `json:"customerId"`
	Items      []basketItemDTO `json:"items"`
	Total      float64         `json:"total"`
}

type addItemRequest struct {
	Code string `json:"code"`
}

type updateQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// updateQuantityResponse pairs the updated item with the basket state after
// the update.
type updateQuantityResponse struct {
	BasketItem     basketItemDTO `json:"basketItem"`
	CustomerBasket basketDTO     `json:"customerBasket"`
}

func toBasketItemDTO(i basket.Item) basketItemDTO {
	return basketItemDTO{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		UnitPrice:   i.UnitPrice.InexactFloat64(),
		Quantity:    i.Quantity,
		Subtotal:    i.Subtotal().InexactFloat64(),
	}
}

func toBasketDTO(b *basket.CustomerBasket) basketDTO {
	items := make([]basketItemDTO, len(b.Items))
	for i, item := range b.Items {
		items[i] = toBasketItemDTO(item)
	}
	return basketDTO{
		CustomerID: b.CustomerID,
		Items:      items,
		Total:      b.Total().InexactFloat64(),
	}
}

// getBasket returns the customer's current basket, empty when none is stored.
func (h *Handler) getBasket(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	b, err := h.baskets.Get(r.Context(), customerID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toBasketDTO(b))
}

// addBasketItem resolves a product code via the catalog and merges one unit
// of it into the basket.
func (h *Handler) addBasketItem(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, r, http.StatusBadRequest, "code is required")
		return
	}

	p, err := h.products.GetByCode(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	b, err := h.baskets.AddItem(r.Context(), customerID, basket.Item{
		ID:          p.Code,
		ProductID:   p.Code,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    1,
	})
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toBasketDTO(b))
}

// updateBasketItem sets an item's quantity; zero removes the item.
func (h *Handler) updateBasketItem(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	var req updateQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, "quantity is required")
		return
	}

	res, err := h.baskets.UpdateQuantity(r.Context(), customerID, req.ProductID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, basket.ErrInvalidQuantity):
			writeError(w, r, http.StatusBadRequest, "quantity must not be negative")
		case errors.Is(err, basket.ErrBasketNotFound), errors.Is(err, basket.ErrItemNotFound):
			writeError(w, r, http.StatusNotFound, "basket item not found")
		default:
			writeInternalError(w, r, err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, updateQuantityResponse{
		BasketItem:     toBasketItemDTO(res.Item),
		CustomerBasket: toBasketDTO(&res.Basket),
	})
}

// deleteBasket removes the customer's whole basket.
func (h *Handler) deleteBasket(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	existed, err := h.baskets.Delete(r.Context(), customerID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if !existed {
		writeError(w, r, http.StatusNotFound, "basket not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listBasketCustomers enumerates all customers with a stored basket.
// Administrative use.
func (h *Handler) listBasketCustomers(w http.ResponseWriter, r *http.Request) {
	ids, err := h.baskets.CustomerIDs(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeJSON(w, r, http.StatusOK, map[string][]string{"customerIds": ids})
}
