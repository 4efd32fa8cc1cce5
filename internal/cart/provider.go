package cart

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"bakeshop/internal/models"
	"bakeshop/internal/remote"
	"bakeshop/internal/session"
)

// Provider keeps a server-synchronized view of the shopping cart. Every
// successful operation replaces the held cart wholesale with the remote
// API's authoritative response. Mutations are not queued: when two race,
// the last response to resolve wins. The held cart is never nil; a failed
// fetch installs a local empty placeholder so consumers never null-check.
type Provider struct {
	api  remote.CartAPI
	sess *session.Provider

	mu      sync.RWMutex
	cart    *models.Cart
	loading bool
	errMsg  string
	open    bool

	changes     <-chan struct{}
	unsubscribe func()
	fetches     singleflight.Group
}

// New creates a Provider. The cart starts as an empty placeholder with the
// loading flag set; the first fetch runs when the session provider reports
// identity resolution.
func New(api remote.CartAPI, sess *session.Provider) *Provider {
	p := &Provider{
		api:     api,
		sess:    sess,
		cart:    models.EmptyCart(),
		loading: true,
	}
	// Subscribing here rather than in Run means an identity change that
	// lands before Run's goroutine is scheduled still triggers a fetch.
	p.changes, p.unsubscribe = sess.Subscribe()
	return p
}

// Run subscribes to identity changes and re-fetches the cart on each one:
// initialization, login, logout and user switch all land here. It blocks
// until ctx is cancelled and is meant to run in its own goroutine.
func (p *Provider) Run(ctx context.Context) {
	defer p.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.changes:
			if !p.sess.Ready() {
				continue
			}
			if err := p.FetchCart(ctx); err != nil {
				log.Printf("Cart refresh failed: %v", err)
			}
		}
	}
}

// FetchCart replaces the held cart with the remote API's current state. The
// shared loading flag is set for the duration. On failure the error slot is
// set and the held cart becomes a fresh empty placeholder. Concurrent
// fetches are collapsed into a single remote call.
func (p *Provider) FetchCart(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.errMsg = ""
	p.mu.Unlock()

	v, err, _ := p.fetches.Do("fetch", func() (any, error) {
		return p.api.GetCart(ctx)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		p.cart = models.EmptyCart()
		return err
	}
	p.cart = v.(*models.Cart)
	return nil
}

// AddToCart adds quantity of the product. Quantity must be positive; the
// storefront currently always passes 1 but any positive value is accepted.
// On failure the error slot is set and the held cart stays unchanged.
func (p *Provider) AddToCart(ctx context.Context, productID string, quantity int) error {
	p.clearError()

	updated, err := p.api.AddToCart(ctx, productID, quantity)
	if err != nil {
		p.setError(err)
		return err
	}
	p.replace(updated)
	return nil
}

// UpdateItemQuantity sets the product's line to the given quantity. A
// quantity below 1 is a removal request: quantities are never stored at
// zero or negative.
func (p *Provider) UpdateItemQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return p.RemoveItem(ctx, productID)
	}

	p.clearError()
	updated, err := p.api.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		p.setError(err)
		return err
	}
	p.replace(updated)
	return nil
}

// RemoveItem drops the product's line from the cart.
func (p *Provider) RemoveItem(ctx context.Context, productID string) error {
	p.clearError()

	updated, err := p.api.RemoveCartItem(ctx, productID)
	if err != nil {
		p.setError(err)
		return err
	}
	p.replace(updated)
	return nil
}

// Cart returns the held cart. It is never nil.
func (p *Provider) Cart() *models.Cart {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cart
}

// Loading reports whether a full fetch is in flight. Individual mutations
// do not touch this flag.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Err returns the most recent operation's error message, or "" when the
// last operation succeeded.
func (p *Provider) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.errMsg
}

// SetOpen opens or closes the cart side panel. This is presentation state,
// independent of the data-fetch state.
func (p *Provider) SetOpen(open bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = open
}

// IsOpen reports whether the cart side panel is open.
func (p *Provider) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.open
}

func (p *Provider) replace(cart *models.Cart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cart = cart
}

func (p *Provider) clearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = ""
}

func (p *Provider) setError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errMsg = err.Error()
}
