package storage

import "sync"

// MemoryTokenStore is an in-memory implementation of TokenStore. It is used
// in mock mode and in tests, where nothing should touch the disk.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryTokenStore creates a new empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token, or ErrNoToken if absent.
func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set || s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// SetToken stores the token.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.set = true
	return nil
}

// ClearToken removes the token.
func (s *MemoryTokenStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.set = false
	return nil
}
