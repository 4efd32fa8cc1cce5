package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"bakeshop/internal/models"
)

// MockProductAPI is an in-memory implementation of ProductAPI, used when the
// app runs without a reachable remote API.
type MockProductAPI struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMockProductAPI creates a new empty MockProductAPI.
func NewMockProductAPI() *MockProductAPI {
	return &MockProductAPI{
		products: make(map[string]models.Product),
	}
}

// List returns all in-stock products.
func (m *MockProductAPI) List(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if p.Stock > 0 {
			list = append(list, p)
		}
	}
	return list, nil
}

// ListAll returns every product, including out-of-stock ones.
func (m *MockProductAPI) ListAll(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		list = append(list, p)
	}
	return list, nil
}

// Create adds a product, generating an ID when absent.
func (m *MockProductAPI) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := *product
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	m.products[created.ID] = created
	return &created, nil
}

// Update replaces the stored product with the given fields.
func (m *MockProductAPI) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return nil, &APIError{Status: 404, Message: fmt.Sprintf("Product %s not found", id)}
	}
	updated := *product
	updated.ID = id
	m.products[id] = updated
	return &updated, nil
}

// Delete removes a product.
func (m *MockProductAPI) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return &APIError{Status: 404, Message: fmt.Sprintf("Product %s not found", id)}
	}
	delete(m.products, id)
	return nil
}

// Ref returns the cart snapshot for a product, or an error when unknown.
func (m *MockProductAPI) Ref(id string) (models.ProductRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return models.ProductRef{}, &APIError{Status: 404, Message: fmt.Sprintf("Product %s not found", id)}
	}
	return models.ProductRef{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL, Price: p.Price}, nil
}
