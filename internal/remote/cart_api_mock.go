package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bakeshop/internal/models"
)

// MockCartAPI is an in-memory implementation of CartAPI. It keeps one cart
// and resolves product snapshots from a MockProductAPI, behaving like the
// remote API does for a single session.
type MockCartAPI struct {
	mu       sync.Mutex
	products *MockProductAPI
	cart     models.Cart
}

// NewMockCartAPI creates a MockCartAPI holding a fresh anonymous cart.
func NewMockCartAPI(products *MockProductAPI) *MockCartAPI {
	now := time.Now()
	return &MockCartAPI{
		products: products,
		cart: models.Cart{
			ID:        uuid.New().String(),
			SessionID: uuid.New().String(),
			Items:     []models.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (m *MockCartAPI) snapshot() *models.Cart {
	copied := m.cart
	copied.Items = make([]models.CartItem, len(m.cart.Items))
	copy(copied.Items, m.cart.Items)
	return &copied
}

// GetCart returns the current cart.
func (m *MockCartAPI) GetCart(ctx context.Context) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

// AddToCart adds quantity of the product, merging into an existing line.
func (m *MockCartAPI) AddToCart(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, &APIError{Status: 400, Message: "Quantity must be at least 1"}
	}
	ref, err := m.products.Ref(productID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	merged := false
	for i := range m.cart.Items {
		if m.cart.Items[i].Product.ID == productID {
			m.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		m.cart.Items = append(m.cart.Items, models.CartItem{
			ID:       uuid.New().String(),
			Product:  ref,
			Quantity: quantity,
		})
	}
	m.cart.UpdatedAt = time.Now()
	return m.snapshot(), nil
}

// UpdateCartItem sets the quantity of the product's line.
func (m *MockCartAPI) UpdateCartItem(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, &APIError{Status: 400, Message: "Quantity must be at least 1"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart.Items {
		if m.cart.Items[i].Product.ID == productID {
			m.cart.Items[i].Quantity = quantity
			m.cart.UpdatedAt = time.Now()
			return m.snapshot(), nil
		}
	}
	return nil, &APIError{Status: 404, Message: fmt.Sprintf("Product %s is not in the cart", productID)}
}

// RemoveCartItem drops the product's line from the cart.
func (m *MockCartAPI) RemoveCartItem(ctx context.Context, productID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart.Items {
		if m.cart.Items[i].Product.ID == productID {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			m.cart.UpdatedAt = time.Now()
			return m.snapshot(), nil
		}
	}
	return nil, &APIError{Status: 404, Message: fmt.Sprintf("Product %s is not in the cart", productID)}
}
