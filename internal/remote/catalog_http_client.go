package remote

import (
	"context"
	"net/http"

	"bakeshop/internal/models"
)

// HTTPProductAPI is the HTTP implementation of ProductAPI.
type HTTPProductAPI struct {
	client *Client
}

// NewHTTPProductAPI creates a new HTTPProductAPI on the shared client.
func NewHTTPProductAPI(client *Client) *HTTPProductAPI {
	return &HTTPProductAPI{client: client}
}

// List fetches the public catalog. The response is a bare array.
func (a *HTTPProductAPI) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := a.client.do(ctx, http.MethodGet, "/api/products", nil, &products, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll fetches the full catalog including out-of-stock products.
func (a *HTTPProductAPI) ListAll(ctx context.Context) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := a.client.do(ctx, http.MethodGet, "/api/products/all", nil, &resp, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Create adds a product to the catalog.
func (a *HTTPProductAPI) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	var resp struct {
		Product *models.Product `json:"product"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/api/products/add", product, &resp, "Failed to add product"); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// Update applies a partial change to a catalog product.
func (a *HTTPProductAPI) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	var resp struct {
		Product *models.Product `json:"product"`
	}
	if err := a.client.do(ctx, http.MethodPatch, "/api/products/"+id, product, &resp, "Failed to update product"); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// Delete removes a product from the catalog.
func (a *HTTPProductAPI) Delete(ctx context.Context, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, "Failed to delete product")
}

// HTTPOrderAPI is the HTTP implementation of OrderAPI.
type HTTPOrderAPI struct {
	client *Client
}

// NewHTTPOrderAPI creates a new HTTPOrderAPI on the shared client.
func NewHTTPOrderAPI(client *Client) *HTTPOrderAPI {
	return &HTTPOrderAPI{client: client}
}

// List fetches the caller's order history.
func (a *HTTPOrderAPI) List(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := a.client.do(ctx, http.MethodGet, "/api/orders", nil, &resp, "Failed to fetch orders"); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetByID fetches a single order.
func (a *HTTPOrderAPI) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := a.client.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &resp, "Failed to fetch order"); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// Place creates an order from the current cart contents.
func (a *HTTPOrderAPI) Place(ctx context.Context, addressID, paymentMethod string) (*models.Order, error) {
	body := map[string]string{"addressId": addressID, "paymentMethod": paymentMethod}
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/api/orders", body, &resp, "Failed to place order"); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// UpdateStatus moves an order to a new status.
func (a *HTTPOrderAPI) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	body := map[string]string{"status": status}
	var resp struct {
		Order *models.Order `json:"order"`
	}
	if err := a.client.do(ctx, http.MethodPatch, "/api/orders/"+id+"/status", body, &resp, "Failed to update order status"); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// HTTPAddressAPI is the HTTP implementation of AddressAPI.
type HTTPAddressAPI struct {
	client *Client
}

// NewHTTPAddressAPI creates a new HTTPAddressAPI on the shared client.
func NewHTTPAddressAPI(client *Client) *HTTPAddressAPI {
	return &HTTPAddressAPI{client: client}
}

// List fetches the caller's address book.
func (a *HTTPAddressAPI) List(ctx context.Context) ([]models.Address, error) {
	var resp struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := a.client.do(ctx, http.MethodGet, "/api/addresses", nil, &resp, "Failed to fetch addresses"); err != nil {
		return nil, err
	}
	return resp.Addresses, nil
}

// Create adds an address to the caller's address book.
func (a *HTTPAddressAPI) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	var resp struct {
		Address *models.Address `json:"address"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/api/addresses", address, &resp, "Failed to add address"); err != nil {
		return nil, err
	}
	return resp.Address, nil
}

// Update replaces an address.
func (a *HTTPAddressAPI) Update(ctx context.Context, id string, address *models.Address) (*models.Address, error) {
	var resp struct {
		Address *models.Address `json:"address"`
	}
	if err := a.client.do(ctx, http.MethodPatch, "/api/addresses/"+id, address, &resp, "Failed to update address"); err != nil {
		return nil, err
	}
	return resp.Address, nil
}

// Delete removes an address.
func (a *HTTPAddressAPI) Delete(ctx context.Context, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/addresses/"+id, nil, nil, "Failed to delete address")
}

// SetDefault marks an address as the caller's default.
func (a *HTTPAddressAPI) SetDefault(ctx context.Context, id string) (*models.Address, error) {
	var resp struct {
		Address *models.Address `json:"address"`
	}
	if err := a.client.do(ctx, http.MethodPatch, "/api/addresses/"+id+"/set-default", nil, &resp, "Failed to set default address"); err != nil {
		return nil, err
	}
	return resp.Address, nil
}
