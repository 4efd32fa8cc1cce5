package remote

import (
	"context"

	"bakeshop/internal/models"
)

// ProductAPI defines the catalog operations against the remote API. The
// ListAll and write operations require an administrator token.
type ProductAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderAPI defines the order operations against the remote API. List returns
// the caller's own orders, or all orders for an administrator. UpdateStatus
// requires an administrator token.
type OrderAPI interface {
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Place(ctx context.Context, addressID, paymentMethod string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}

// AddressAPI defines the address-book operations against the remote API.
type AddressAPI interface {
	List(ctx context.Context) ([]models.Address, error)
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	Update(ctx context.Context, id string, address *models.Address) (*models.Address, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*models.Address, error)
}
