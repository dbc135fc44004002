package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tibacare/storefront/internal/domain"
)

var (
	// ErrCartInvalidInput indicates a bad product id or quantity.
	ErrCartInvalidInput = errors.New("cart store: invalid input")
	// ErrCartUnavailable indicates the backend rejected a write.
	ErrCartUnavailable = errors.New("cart store: unavailable")
)

// Cart owns the persisted shopping cart collection: at most one entry per
// product id, quantity always at least one. Reads that hit missing or
// malformed storage yield an empty cart, never an error; the corrupt state
// is silently replaced by the next write.
type Cart struct {
	mu      sync.Mutex
	backend Backend
	key     string
	now     func() time.Time
	logger  *zap.Logger
	hub     *hub
}

// CartDeps wires the backend and clock for the cart store.
type CartDeps struct {
	Backend Backend
	Key     string
	Clock   func() time.Time
	Logger  *zap.Logger
}

// NewCart constructs the cart store, validating its dependencies.
func NewCart(deps CartDeps) (*Cart, error) {
	if deps.Backend == nil {
		return nil, errors.New("cart store: backend is required")
	}
	key := deps.Key
	if key == "" {
		key = CartKey
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cart{
		backend: deps.Backend,
		key:     key,
		now:     func() time.Time { return clock().UTC() },
		logger:  logger,
		hub:     newHub(key),
	}, nil
}

// Entries returns the current cart contents. Unreadable or malformed
// storage behaves as an empty cart.
func (c *Cart) Entries(ctx context.Context) []domain.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// ItemCount sums the quantities across all entries, feeding the cart
// badge in every view.
func (c *Cart) ItemCount(ctx context.Context) int {
	total := 0
	for _, entry := range c.Entries(ctx) {
		total += entry.Quantity
	}
	return total
}

// Add merges qty into the entry for productID, creating the entry on first
// add. Re-adding an existing product increments its quantity instead of
// duplicating the entry.
func (c *Cart) Add(ctx context.Context, productID string, qty int) ([]domain.CartEntry, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrCartInvalidInput)
	}

	c.mu.Lock()
	entries := c.load(ctx)
	merged := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		entries = append(entries, domain.CartEntry{
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   c.now(),
		})
	}
	err := c.persist(ctx, entries)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.hub.notify(false)
	return entries, nil
}

// SetQuantity replaces the entry's quantity. Zero or negative removes the
// entry entirely. Setting a quantity for an absent product is a no-op
// write of the unchanged collection.
func (c *Cart) SetQuantity(ctx context.Context, productID string, qty int) ([]domain.CartEntry, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}

	c.mu.Lock()
	entries := c.load(ctx)
	next := entries[:0]
	for _, entry := range entries {
		if entry.ProductID == productID {
			if qty <= 0 {
				continue
			}
			entry.Quantity = qty
		}
		next = append(next, entry)
	}
	err := c.persist(ctx, next)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.hub.notify(false)
	return next, nil
}

// Remove deletes the entry for productID.
func (c *Cart) Remove(ctx context.Context, productID string) ([]domain.CartEntry, error) {
	return c.SetQuantity(ctx, productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	err := c.persist(ctx, []domain.CartEntry{})
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.hub.notify(false)
	return nil
}

// Subscribe registers an in-process listener invoked after every
// mutation, local or remote. The returned cancel removes the listener.
func (c *Cart) Subscribe(fn func(Change)) func() {
	return c.hub.subscribe(fn)
}

// Version exposes the change counter for consumers polling for staleness.
func (c *Cart) Version() uint64 {
	return c.hub.currentVersion()
}

// Watch pumps the backend's cross-process change events into the local
// subscription hub until the context ends. Run it in its own goroutine;
// it returns the subscription error, or nil on context cancellation.
func (c *Cart) Watch(ctx context.Context) error {
	events, cancel, err := c.backend.Subscribe(ctx, c.key)
	if err != nil {
		return err
	}
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			c.hub.notify(true)
		}
	}
}

// load must be called with c.mu held.
func (c *Cart) load(ctx context.Context) []domain.CartEntry {
	data, err := c.backend.Load(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cart read failed, treating as empty", zap.Error(err))
		}
		return []domain.CartEntry{}
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("cart data malformed, treating as empty", zap.Error(err))
		return []domain.CartEntry{}
	}
	return sanitizeEntries(entries)
}

// persist must be called with c.mu held.
func (c *Cart) persist(ctx context.Context, entries []domain.CartEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnavailable, err)
	}
	if err := c.backend.Store(ctx, c.key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUnavailable, err)
	}
	return nil
}

// sanitizeEntries drops entries that violate the collection invariants:
// empty ids, non-positive quantities, and duplicate product ids (first
// entry wins). External writers share the storage key, so the invariants
// are re-established on every read.
func sanitizeEntries(entries []domain.CartEntry) []domain.CartEntry {
	out := make([]domain.CartEntry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.ProductID == "" || entry.Quantity <= 0 {
			continue
		}
		if _, ok := seen[entry.ProductID]; ok {
			continue
		}
		seen[entry.ProductID] = struct{}{}
		out = append(out, entry)
	}
	return out
}
