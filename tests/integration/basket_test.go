//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestBasket_RequiresAuth(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/basket", "", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBasket_UnknownToken(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/basket", "not-a-real-token", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBasket_AddAndGet(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "001"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, "/api/basket", sessionToken, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get basket: expected 200, got %d", resp.StatusCode)
	}

	b := decodeJSON[basketResponse](t, resp)
	if b.CustomerID != sessionCustomer {
		t.Errorf("customerId: got %q, want %q", b.CustomerID, sessionCustomer)
	}
	if len(b.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(b.Items))
	}
	if b.Items[0].ProductName != "Oranges" {
		t.Errorf("productName: got %q", b.Items[0].ProductName)
	}
	if b.Total != 5.90 {
		t.Errorf("total: got %f, want 5.90", b.Total)
	}
}

func TestBasket_AddUnknownProduct(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "does-not-exist"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBasket_UpdateQuantity(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "002"})
	resp.Body.Close()

	resp = doRequest(t, http.MethodPut, "/api/basket/items", sessionToken,
		map[string]any{"productId": "002", "quantity": 3})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[updateQuantityResponse](t, resp)
	if res.BasketItem.Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", res.BasketItem.Quantity)
	}
	if res.CustomerBasket.Total != 10.50 {
		t.Errorf("total: got %f, want 10.50", res.CustomerBasket.Total)
	}
}

func TestBasket_UpdateQuantityToZeroRemoves(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "003"})
	resp.Body.Close()

	resp = doRequest(t, http.MethodPut, "/api/basket/items", sessionToken,
		map[string]any{"productId": "003", "quantity": 0})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[updateQuantityResponse](t, resp)
	if len(res.CustomerBasket.Items) != 0 {
		t.Errorf("expected empty basket, got %d items", len(res.CustomerBasket.Items))
	}
}

func TestBasket_UpdateQuantityValidation(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "001"})
	resp.Body.Close()

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"negative quantity", map[string]any{"productId": "001", "quantity": -1}, http.StatusBadRequest},
		{"missing quantity", map[string]any{"productId": "001"}, http.StatusBadRequest},
		{"blank product id", map[string]any{"productId": "", "quantity": 1}, http.StatusBadRequest},
		{"item not in basket", map[string]any{"productId": "031", "quantity": 1}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPut, "/api/basket/items", sessionToken, tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestBasket_Delete(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "001"})
	resp.Body.Close()

	resp = doRequest(t, http.MethodDelete, "/api/basket", sessionToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	// Deleting again reports not found.
	resp = doRequest(t, http.MethodDelete, "/api/basket", sessionToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBasket_ListCustomers(t *testing.T) {
	clearBasket(t)

	resp := doRequest(t, http.MethodPost, "/api/basket/items", sessionToken,
		map[string]string{"code": "001"})
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, "/api/basket/customers", sessionToken, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	res := decodeJSON[map[string][]string](t, resp)
	found := false
	for _, id := range res["customerIds"] {
		if id == sessionCustomer {
			found = true
		}
	}
	if !found {
		t.Errorf("customerIds %v does not include %q", res["customerIds"], sessionCustomer)
	}
}
