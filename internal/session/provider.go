package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"bakeshop/internal/models"
	"bakeshop/internal/remote"
	"bakeshop/internal/storage"
)

// Provider resolves and holds the current principal. The identity is derived
// once from the stored credential token at startup and replaced wholesale by
// login, signup, profile-update and logout flows. Dependents subscribe to be
// told whenever the identity changes.
type Provider struct {
	api            remote.AuthAPI
	store          storage.TokenStore
	onAuthRequired func()

	mu      sync.RWMutex
	user    *models.User
	ready   bool
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Provider. onAuthRequired is invoked when the stored
// credential is rejected by the remote API; it is the redirect-to-login
// hook and may be nil.
func New(api remote.AuthAPI, store storage.TokenStore, onAuthRequired func()) *Provider {
	return &Provider{
		api:            api,
		store:          store,
		onAuthRequired: onAuthRequired,
		subs:           make(map[int]chan struct{}),
	}
}

// Initialize resolves the identity from the stored credential token. With no
// stored token it resolves to "not authenticated" immediately, without a
// network call. A token the remote API rejects is purged, so repeated
// initialization with an invalid token clears it exactly once. Lookup
// failure is terminal for the session; there is no retry.
func (p *Provider) Initialize(ctx context.Context) {
	if _, err := p.store.Token(); err != nil {
		if !errors.Is(err, storage.ErrNoToken) {
			log.Printf("Failed to read stored token: %v", err)
		}
		p.setUser(nil, true)
		return
	}

	// The token itself travels implicitly: the API client reads it from the
	// store when it builds the request.
	user, err := p.api.Me(ctx)
	if err != nil {
		log.Printf("Stored credential rejected: %v", err)
		if clearErr := p.store.ClearToken(); clearErr != nil {
			log.Printf("Failed to clear rejected token: %v", clearErr)
		}
		p.setUser(nil, true)
		if p.onAuthRequired != nil {
			p.onAuthRequired()
		}
		return
	}

	p.setUser(user, true)
}

// SetUser replaces the held identity wholesale. Callers are trusted: login,
// signup and profile-update flows pass the freshly returned principal,
// logout passes nil. Subscribers are notified.
func (p *Provider) SetUser(user *models.User) {
	p.mu.Lock()
	p.user = user
	p.mu.Unlock()
	p.notify()
}

func (p *Provider) setUser(user *models.User, ready bool) {
	p.mu.Lock()
	p.user = user
	p.ready = ready
	p.mu.Unlock()
	p.notify()
}

// User returns the current identity, or nil when not authenticated.
func (p *Provider) User() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// Ready reports whether identity resolution has completed.
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

// Subscribe returns a channel that receives a tick after every identity
// change, including the completion of Initialize. Notifications coalesce:
// a subscriber that has not consumed the previous tick does not queue more.
// The returned cancel function releases the subscription.
func (p *Provider) Subscribe() (<-chan struct{}, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	ch := make(chan struct{}, 1)
	p.subs[id] = ch

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
	return ch, cancel
}

func (p *Provider) notify() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
