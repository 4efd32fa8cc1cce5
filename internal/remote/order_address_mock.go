package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bakeshop/internal/models"
)

// MockOrderAPI is an in-memory implementation of OrderAPI. Placing an order
// snapshots and clears the mock cart, the way the remote API does.
type MockOrderAPI struct {
	mu        sync.Mutex
	cart      *MockCartAPI
	addresses *MockAddressAPI
	orders    map[string]models.Order
}

// NewMockOrderAPI creates a MockOrderAPI over the given cart and address book.
func NewMockOrderAPI(cart *MockCartAPI, addresses *MockAddressAPI) *MockOrderAPI {
	return &MockOrderAPI{
		cart:      cart,
		addresses: addresses,
		orders:    make(map[string]models.Order),
	}
}

// List returns all orders placed in this session.
func (m *MockOrderAPI) List(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		list = append(list, o)
	}
	return list, nil
}

// GetByID returns a single order.
func (m *MockOrderAPI) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Order %s not found", id)}
	}
	return &order, nil
}

// Place turns the current cart into an order and empties the cart.
func (m *MockOrderAPI) Place(ctx context.Context, addressID, paymentMethod string) (*models.Order, error) {
	cart, err := m.cart.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, &APIError{Status: 400, Message: "Cart is empty"}
	}
	address, err := m.addresses.get(addressID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	order := models.Order{
		ID:              uuid.New().String(),
		UserID:          cart.UserID,
		Status:          "pending",
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
		order.TotalAmount += item.Product.Price * float64(item.Quantity)
	}
	m.orders[order.ID] = order

	m.cart.mu.Lock()
	m.cart.cart.Items = []models.CartItem{}
	m.cart.cart.UpdatedAt = now
	m.cart.mu.Unlock()

	return &order, nil
}

// UpdateStatus moves an order to a new status.
func (m *MockOrderAPI) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Order %s not found", id)}
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	m.orders[id] = order
	return &order, nil
}

// MockAddressAPI is an in-memory implementation of AddressAPI.
type MockAddressAPI struct {
	mu        sync.Mutex
	addresses map[string]models.Address
}

// NewMockAddressAPI creates a new empty MockAddressAPI.
func NewMockAddressAPI() *MockAddressAPI {
	return &MockAddressAPI{
		addresses: make(map[string]models.Address),
	}
}

func (m *MockAddressAPI) get(id string) (*models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	address, ok := m.addresses[id]
	if !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Address %s not found", id)}
	}
	return &address, nil
}

// List returns the address book.
func (m *MockAddressAPI) List(ctx context.Context) ([]models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.Address, 0, len(m.addresses))
	for _, a := range m.addresses {
		list = append(list, a)
	}
	return list, nil
}

// Create adds an address, clearing other defaults when this one is default.
func (m *MockAddressAPI) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := *address
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.IsDefault {
		m.clearDefaultLocked()
	}
	m.addresses[created.ID] = created
	return &created, nil
}

// Update replaces an address.
func (m *MockAddressAPI) Update(ctx context.Context, id string, address *models.Address) (*models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addresses[id]; !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Address %s not found", id)}
	}
	updated := *address
	updated.ID = id
	if updated.IsDefault {
		m.clearDefaultLocked()
	}
	m.addresses[id] = updated
	return &updated, nil
}

// Delete removes an address.
func (m *MockAddressAPI) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.addresses[id]; !ok {
		return &APIError{Status: 404, Message: fmt.Sprintf("Address %s not found", id)}
	}
	delete(m.addresses, id)
	return nil
}

// SetDefault marks the address as default and clears the previous default.
func (m *MockAddressAPI) SetDefault(ctx context.Context, id string) (*models.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	address, ok := m.addresses[id]
	if !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Address %s not found", id)}
	}
	m.clearDefaultLocked()
	address.IsDefault = true
	m.addresses[id] = address
	return &address, nil
}

func (m *MockAddressAPI) clearDefaultLocked() {
	for id, a := range m.addresses {
		if a.IsDefault {
			a.IsDefault = false
			m.addresses[id] = a
		}
	}
}
