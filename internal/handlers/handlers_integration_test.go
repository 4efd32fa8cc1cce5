package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/cart"
	"bakeshop/internal/handlers"
	"bakeshop/internal/middleware"
	"bakeshop/internal/models"
	"bakeshop/internal/remote"
	"bakeshop/internal/session"
	"bakeshop/internal/storage"
)

const testAdminPin = "secret-pin"

// setupApp wires the full storefront against the in-memory mock remote API,
// the way main does in mock mode.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	tokens := storage.NewMemoryTokenStore()

	catalog := remote.NewMockProductAPI()
	for _, p := range []models.Product{
		{ID: "p1", Name: "Sourdough Loaf", Price: 6.50, Category: "bread", Stock: 10},
		{ID: "p2", Name: "Lemon Tart", Price: 4.75, Category: "tarts", Stock: 5},
	} {
		product := p
		_, err := catalog.Create(context.Background(), &product)
		require.NoError(t, err)
	}

	mockCart := remote.NewMockCartAPI(catalog)
	mockAddresses := remote.NewMockAddressAPI()
	authAPI := remote.NewMockAuthAPI(tokens, testAdminPin)
	orderAPI := remote.NewMockOrderAPI(mockCart, mockAddresses)

	sess := session.New(authAPI, tokens, nil)
	cartProvider := cart.New(mockCart, sess)

	// The subscription-driven refetch loop is covered by the cart provider
	// tests; here every request's effect must be observable synchronously,
	// so the handlers drive the provider directly.
	sess.Initialize(context.Background())

	app := fiber.New()
	requireUser := middleware.RequireUser(sess)
	requireAdmin := middleware.RequireAdmin(sess)

	api := app.Group("/api")
	handlers.NewAuthHandler(authAPI, tokens, sess).RegisterRoutes(api, requireUser)
	handlers.NewProductHandler(catalog).RegisterRoutes(api, requireUser, requireAdmin)
	handlers.NewCartHandler(cartProvider).RegisterRoutes(api)
	handlers.NewOrderHandler(orderAPI, cartProvider).RegisterRoutes(api, requireUser, requireAdmin)
	handlers.NewAddressHandler(mockAddresses).RegisterRoutes(api, requireUser)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signup(t *testing.T, app *fiber.App, name, email string) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": "crumbs99",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGuestCartFlow(t *testing.T) {
	app := setupApp(t)

	// A guest can browse and fill a cart without signing in.
	resp, body := doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{
		"productId": "p1",
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["totalQuantity"])
	assert.InDelta(t, 13.0, body["subtotal"].(float64), 0.001)

	// Quantity defaults to 1 when omitted.
	resp, body = doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{
		"productId": "p2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["totalQuantity"])
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPatch, "/api/cart/items/p1", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	held := body["cart"].(map[string]any)
	assert.Empty(t, held["items"])
	assert.Equal(t, float64(0), body["totalQuantity"])
}

func TestAddUnknownProduct_ErrorLeavesCartIntact(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{"productId": "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{"productId": "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["message"], "not found")

	// The held cart still has the earlier line, and the error is exposed.
	_, view := doJSON(t, app, http.MethodGet, "/api/cart/", nil)
	assert.Equal(t, float64(1), view["totalQuantity"])
	assert.NotEmpty(t, view["error"])
}

func TestProductList_Filters(t *testing.T) {
	app := setupApp(t)

	_, body := doJSON(t, app, http.MethodGet, "/api/products/?category=bread", nil)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Sourdough Loaf", products[0].(map[string]any)["name"])

	_, body = doJSON(t, app, http.MethodGet, "/api/products/?search=lemon", nil)
	products = body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Lemon Tart", products[0].(map[string]any)["name"])
}

func TestAdminRoutes_RequireRole(t *testing.T) {
	app := setupApp(t)

	// Anonymous shoppers are turned away first.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/products/all", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// An ordinary shopper is authenticated but not authorized.
	signup(t, app, "Ada", "ada@example.com")
	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/all", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminSignupWithPinManagesCatalog(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "crumbs99",
		"role":     "admin",
		"adminPin": testAdminPin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/products/", map[string]any{
		"name":     "Rye Loaf",
		"price":    5.25,
		"category": "bread",
		"stock":    6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := body["product"].(map[string]any)
	assert.NotEmpty(t, created["_id"])

	_, body = doJSON(t, app, http.MethodGet, "/api/products/all", nil)
	assert.Len(t, body["products"].([]any), 3)
}

func TestAdminSignup_WrongPinRejected(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Eve",
		"email":    "eve@example.com",
		"password": "crumbs99",
		"role":     "admin",
		"adminPin": "guess",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid admin access key", body["message"])
}

func TestCheckoutFlow(t *testing.T) {
	app := setupApp(t)
	signup(t, app, "Ada", "ada@example.com")

	// Checkout with an empty cart is refused locally.
	resp, body := doJSON(t, app, http.MethodPost, "/api/orders/", map[string]string{
		"addressId":     "a1",
		"paymentMethod": "COD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Your cart is empty", body["message"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart/items", map[string]any{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/addresses/", map[string]any{
		"addressLine1": "1 Bakery Lane",
		"city":         "Pune",
		"state":        "MH",
		"postalCode":   "411001",
		"country":      "India",
		"addressType":  "shipping",
		"isDefault":    true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	addressID := body["address"].(map[string]any)["_id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/orders/", map[string]string{
		"addressId":     addressID,
		"paymentMethod": "COD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["order"].(map[string]any)
	assert.Equal(t, "pending", order["status"])
	assert.InDelta(t, 13.0, order["totalAmount"].(float64), 0.001)

	// The order shows up in history and the cart has been resynchronized
	// to empty.
	_, body = doJSON(t, app, http.MethodGet, "/api/orders/", nil)
	assert.Len(t, body["orders"].([]any), 1)

	_, view := doJSON(t, app, http.MethodGet, "/api/cart/", nil)
	assert.Equal(t, float64(0), view["totalQuantity"])
}

func TestCheckout_ValidatesPaymentMethod(t *testing.T) {
	app := setupApp(t)
	signup(t, app, "Ada", "ada@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/orders/", map[string]string{
		"addressId":     "somewhere",
		"paymentMethod": "Barter",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])
}

func TestLogoutResetsIdentity(t *testing.T) {
	app := setupApp(t)
	signup(t, app, "Ada", "ada@example.com")

	_, body := doJSON(t, app, http.MethodGet, "/api/auth/me", nil)
	require.NotNil(t, body["user"])

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, http.MethodGet, "/api/auth/me", nil)
	assert.Nil(t, body["user"])
	assert.Equal(t, true, body["ready"])

	// Authenticated routes are gated again.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/orders/", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
