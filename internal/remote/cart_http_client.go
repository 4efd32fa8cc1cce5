package remote

import (
	"context"
	"net/http"

	"bakeshop/internal/models"
)

// cartMutation is the request body shared by the cart mutation endpoints.
type cartMutation struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

// HTTPCartAPI is the HTTP implementation of CartAPI.
type HTTPCartAPI struct {
	client *Client
}

// NewHTTPCartAPI creates a new HTTPCartAPI on the shared client.
func NewHTTPCartAPI(client *Client) *HTTPCartAPI {
	return &HTTPCartAPI{client: client}
}

// GetCart fetches the current cart.
func (a *HTTPCartAPI) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := a.client.do(ctx, http.MethodGet, "/api/cart", nil, &cart, "Failed to fetch cart"); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity of the given product and returns the updated cart.
func (a *HTTPCartAPI) AddToCart(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartMutation{ProductID: productID, Quantity: quantity}
	if err := a.client.do(ctx, http.MethodPost, "/api/cart/add", body, &cart, "Failed to add item to cart"); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of the given product's line and returns
// the updated cart.
func (a *HTTPCartAPI) UpdateCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartMutation{ProductID: productID, Quantity: quantity}
	if err := a.client.do(ctx, http.MethodPatch, "/api/cart/update", body, &cart, "Failed to update cart item"); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem removes the given product's line and returns the updated cart.
func (a *HTTPCartAPI) RemoveCartItem(ctx context.Context, productID string) (*models.Cart, error) {
	var cart models.Cart
	body := cartMutation{ProductID: productID}
	if err := a.client.do(ctx, http.MethodDelete, "/api/cart/remove", body, &cart, "Failed to remove item from cart"); err != nil {
		return nil, err
	}
	return &cart, nil
}
