package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/ethrva/shopfront/internal/domain/checkout"
	"github.com/ethrva/shopfront/internal/domain/order"
)

type checkoutRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	AdditionalAddress string `json:"additionalAddress"`
	District          string `json:"district"`
	City              string `json:"city"`
	State             string `json:"state"`
	ZipCode           string `json:"zipCode"`
}

type orderItemDTO struct {
	ID          int64   `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type orderDTO struct {
	ID                        int64          `json:"id"`
	Items                     []orderItemDTO `json:"items"`
	Total                     float64        `json:"total"`
	CustomerID                string         `json:"customerId"`
	CustomerName              string         `json:"customerName"`
	CustomerEmail             string         `json:"customerEmail"`
	CustomerPhone             string         `json:"customerPhone"`
	CustomerAddress           string         `json:"customerAddress"`
	CustomerAdditionalAddress string         `json:"customerAdditionalAddress,omitempty"`
	CustomerDistrict          string         `json:"customerDistrict"`
	CustomerCity              string         `json:"customerCity"`
	CustomerState             string         `json:"customerState"`
	CustomerZipCode           string         `json:"customerZipCode"`
	CreatedAt                 time.Time      `json:"createdAt"`
}

func toOrderDTO(o *order.Order) orderDTO {
	items := make([]orderItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal().InexactFloat64(),
		}
	}
	return orderDTO{
		ID:                        o.ID,
		Items:                     items,
		Total:                     o.Total().InexactFloat64(),
		CustomerID:                o.CustomerID,
		CustomerName:              o.CustomerName,
		CustomerEmail:             o.CustomerEmail,
		CustomerPhone:             o.CustomerPhone,
		CustomerAddress:           o.CustomerAddress,
		CustomerAdditionalAddress: o.CustomerAdditionalAddress,
		CustomerDistrict:          o.CustomerDistrict,
		CustomerCity:              o.CustomerCity,
		CustomerState:             o.CustomerState,
		CustomerZipCode:           o.CustomerZipCode,
		CreatedAt:                 o.CreatedAt,
	}
}

// placeOrder runs the checkout flow for the authenticated customer and
// returns the created order.
func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	customerID := customerIDFromContext(r.Context())

	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.checkout.Checkout(r.Context(), customerID, checkout.ProfileUpdate{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		AdditionalAddress: req.AdditionalAddress,
		District:          req.District,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
	})
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toOrderDTO(created))
}

// writeCheckoutError maps order validation failures to 422 responses; any
// other error is a server failure.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		itemErr *order.InvalidItemError
		custErr *order.InvalidCustomerDataError
	)
	switch {
	case errors.Is(err, order.ErrNoItems):
		writeError(w, r, http.StatusUnprocessableEntity, "basket is empty")
	case errors.As(err, &itemErr):
		writeError(w, r, http.StatusUnprocessableEntity, itemErr.Error())
	case errors.As(err, &custErr):
		writeError(w, r, http.StatusUnprocessableEntity, custErr.Error())
	case errors.Is(err, order.ErrNilOrder), errors.Is(err, order.ErrBlankCustomerID):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeInternalError(w, r, err)
	}
}
