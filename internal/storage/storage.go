package storage

import "errors"

// ErrNoToken is returned when no credential token is stored.
var ErrNoToken = errors.New("no stored token")

// TokenStore defines the interface for the client-local credential store.
// The presence of a token is the sole signal of "possibly authenticated".
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}
