package remote

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bakeshop/internal/models"
	"bakeshop/internal/storage"
)

// MockAuthAPI is an in-memory implementation of AuthAPI. Like the HTTP
// implementation it reads the credential token from the store at call time,
// so the session provider behaves identically against it.
type MockAuthAPI struct {
	mu       sync.Mutex
	tokens   storage.TokenStore
	adminPin string
	byEmail  map[string]mockAccount
	byToken  map[string]string // token -> email
}

type mockAccount struct {
	user     models.User
	password string
}

// NewMockAuthAPI creates a MockAuthAPI with no accounts. adminPin guards
// signups that request the admin role.
func NewMockAuthAPI(tokens storage.TokenStore, adminPin string) *MockAuthAPI {
	return &MockAuthAPI{
		tokens:   tokens,
		adminPin: adminPin,
		byEmail:  make(map[string]mockAccount),
		byToken:  make(map[string]string),
	}
}

func (m *MockAuthAPI) currentLocked() (*models.User, error) {
	token, err := m.tokens.Token()
	if err != nil {
		return nil, &APIError{Status: 401, Message: "Unauthorized"}
	}
	email, ok := m.byToken[token]
	if !ok {
		return nil, &APIError{Status: 401, Message: "Unauthorized"}
	}
	account := m.byEmail[email]
	user := account.user
	return &user, nil
}

// Me resolves the principal behind the stored credential token.
func (m *MockAuthAPI) Me(ctx context.Context) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

// Login checks credentials and issues a fresh token.
func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.byEmail[email]
	if !ok || account.password != password {
		return "", nil, &APIError{Status: 401, Message: "Invalid email or password"}
	}
	token := uuid.New().String()
	m.byToken[token] = email
	user := account.user
	return token, &user, nil
}

// Signup registers an account and issues a token for it.
func (m *MockAuthAPI) Signup(ctx context.Context, req SignupRequest) (string, *models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[req.Email]; exists {
		return "", nil, &APIError{Status: 409, Message: "Email already registered"}
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleAdmin && req.AdminPin != m.adminPin {
		return "", nil, &APIError{Status: 403, Message: "Invalid admin access key"}
	}

	user := models.User{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	m.byEmail[req.Email] = mockAccount{user: user, password: req.Password}

	token := uuid.New().String()
	m.byToken[token] = req.Email
	return token, &user, nil
}

// Logout invalidates the stored token server side.
func (m *MockAuthAPI) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, err := m.tokens.Token(); err == nil {
		delete(m.byToken, token)
	}
	return nil
}

// UpdateProfile applies a partial change to the signed-in account.
func (m *MockAuthAPI) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.currentLocked()
	if err != nil {
		return nil, err
	}
	account := m.byEmail[current.Email]
	if update.Name != "" {
		account.user.Name = update.Name
	}
	if update.Password != "" {
		account.password = update.Password
	}
	if update.Email != "" && update.Email != current.Email {
		if _, taken := m.byEmail[update.Email]; taken {
			return nil, &APIError{Status: 409, Message: "Email already registered"}
		}
		delete(m.byEmail, current.Email)
		account.user.Email = update.Email
		for token, email := range m.byToken {
			if email == current.Email {
				m.byToken[token] = update.Email
			}
		}
	}
	m.byEmail[account.user.Email] = account
	user := account.user
	return &user, nil
}
