package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentCOD    = "COD"
	PaymentOnline = "Online"
	PaymentQR     = "QR"
)

// OrderItem is a single line within an order, priced at order time.
type OrderItem struct {
	Product  ProductRef `json:"productId"`
	Quantity int        `json:"quantity"`
	Price    float64    `json:"price"`
}

// Order is a placed order as returned by the remote API.
type Order struct {
	ID              string      `json:"_id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"` // e.g. "pending", "processing", "shipped", "delivered", "cancelled"
	ShippingAddress *Address    `json:"shippingAddress,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
