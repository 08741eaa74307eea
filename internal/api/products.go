package api

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/ethrva/shopfront/internal/domain/product"
)

type productDTO struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func toProductDTO(p product.Product) productDTO {
	return productDTO{
		Code:     p.Code,
		Name:     p.Name,
		Price:    p.Price.InexactFloat64(),
		Category: p.Category,
	}
}

// listProducts returns the whole catalog.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}

	dtos := make([]productDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}

	writeJSON(w, r, http.StatusOK, map[string][]productDTO{"products": dtos})
}

// getProduct returns a single catalog product by code.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	p, err := h.products.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toProductDTO(*p))
}
