package remote

import (
	"context"

	"bakeshop/internal/models"
)

// CartAPI defines the four cart operations against the remote API. Each call
// returns the full, authoritative cart on success.
type CartAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, productID string, quantity int) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (*models.Cart, error)
}
