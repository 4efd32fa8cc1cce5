package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/remote"
	"bakeshop/internal/storage"
)

func testCartJSON() string {
	return `{
		"_id": "c1",
		"userId": "u1",
		"items": [
			{"_id": "i1", "productId": {"_id": "p1", "name": "Lemon Tart", "imageUrl": "/tart.jpg", "price": 10}, "quantity": 2}
		],
		"createdAt": "2026-08-30T10:00:00Z",
		"updatedAt": "2026-08-30T10:05:00Z"
	}`
}

func newCartAPI(t *testing.T, handler http.HandlerFunc, token string) *remote.HTTPCartAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := storage.NewMemoryTokenStore()
	if token != "" {
		require.NoError(t, tokens.SetToken(token))
	}
	client := remote.NewClient(server.URL, 5*time.Second, tokens)
	return remote.NewHTTPCartAPI(client)
}

func TestGetCart_DecodesAuthoritativeCart(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCartJSON()))
	}, "tok-1")

	cart, err := api.GetCart(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "c1", cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].Product.ID)
	assert.Equal(t, 10.0, cart.Items[0].Product.Price)
	assert.Equal(t, 2, cart.TotalQuantity())
}

func TestGetCart_NoStoredTokenOmitsAuthHeader(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(testCartJSON()))
	}, "")

	_, err := api.GetCart(context.Background())
	assert.NoError(t, err)
}

func TestAddToCart_SendsMutationBody(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["productId"])
		assert.Equal(t, float64(3), body["quantity"])
		w.Write([]byte(testCartJSON()))
	}, "tok-1")

	cart, err := api.AddToCart(context.Background(), "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, "c1", cart.ID)
}

func TestUpdateCartItem_UsesPatch(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/cart/update", r.URL.Path)
		w.Write([]byte(testCartJSON()))
	}, "tok-1")

	_, err := api.UpdateCartItem(context.Background(), "p1", 4)
	assert.NoError(t, err)
}

func TestRemoveCartItem_UsesDelete(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/cart/remove", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["productId"])
		// Removal carries no quantity.
		_, hasQuantity := body["quantity"]
		assert.False(t, hasQuantity)
		w.Write([]byte(testCartJSON()))
	}, "tok-1")

	_, err := api.RemoveCartItem(context.Background(), "p1")
	assert.NoError(t, err)
}

func TestCartAPI_ServerMessagePropagates(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "Out of stock"}`))
	}, "tok-1")

	_, err := api.AddToCart(context.Background(), "p1", 1)

	require.Error(t, err)
	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Out of stock", apiErr.Message)
}

func TestCartAPI_FallbackMessageWhenBodyHasNone(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	}, "tok-1")

	_, err := api.GetCart(context.Background())

	require.Error(t, err)
	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch cart", apiErr.Message)

	_, err = api.UpdateCartItem(context.Background(), "p1", 2)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to update cart item", apiErr.Message)

	_, err = api.RemoveCartItem(context.Background(), "p1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to remove item from cart", apiErr.Message)
}

// A failure body that is not JSON at all still yields the fallback message.
func TestCartAPI_NonJSONFailureBody(t *testing.T) {
	api := newCartAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}, "tok-1")

	_, err := api.AddToCart(context.Background(), "p1", 1)

	require.Error(t, err)
	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to add item to cart", apiErr.Message)
}
