package models

// Product is a catalog entry as returned by the remote API.
type Product struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
}
