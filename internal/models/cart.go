package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductRef is the product snapshot the remote API embeds in each cart line.
type ProductRef struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Price    float64 `json:"price"`
}

// CartItem is one product line within a cart. The line ID is distinct from
// the product ID. Quantity is always >= 1; a line is removed rather than
// stored at zero.
type CartItem struct {
	ID       string     `json:"_id"`
	Product  ProductRef `json:"productId"`
	Quantity int        `json:"quantity"`
}

// Cart is the shopping basket for the current session as returned by the
// remote API. Exactly one of UserID / SessionID is meaningful depending on
// whether the shopper is authenticated. An empty Items slice is a valid
// empty cart.
type Cart struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId,omitempty"`
	SessionID string     `json:"sessionId,omitempty"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalQuantity returns the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the price-times-quantity sum across all lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemFor returns the line for the given product ID, or nil if absent.
func (c *Cart) ItemFor(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// EmptyCart builds a local, always-renderable placeholder cart. It is used
// when a fetch fails so that consumers never have to null-check the cart.
func EmptyCart() *Cart {
	now := time.Now()
	return &Cart{
		ID:        "local-" + uuid.New().String(),
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
