package models

// Address is a delivery address in the shopper's address book.
type Address struct {
	ID           string `json:"_id,omitempty"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country" validate:"required"`
	AddressType  string `json:"addressType" validate:"omitempty,oneof=shipping billing"`
	IsDefault    bool   `json:"isDefault"`
}
