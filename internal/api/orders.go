package api

import (
	"net/http"
)

// listOrders returns the authenticated customer's order history, newest
// first.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	orders, err := h.checkout.Orders(r.Context(), customerID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	dtos := make([]orderDTO, len(orders))
	for i := range orders {
		dtos[i] = toOrderDTO(&orders[i])
	}

	writeJSON(w, r, http.StatusOK, map[string][]orderDTO{"orders": dtos})
}
