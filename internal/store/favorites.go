package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrFavoritesInvalidInput indicates a bad product id.
	ErrFavoritesInvalidInput = errors.New("favorites store: invalid input")
	// ErrFavoritesUnavailable indicates the backend rejected a write.
	ErrFavoritesUnavailable = errors.New("favorites store: unavailable")
)

// Favorites owns the persisted favorites collection: a list of product
// ids ordered by first insertion. Toggle flips membership on every call;
// it is deliberately not an idempotent set-add.
type Favorites struct {
	mu      sync.Mutex
	backend Backend
	key     string
	logger  *zap.Logger
	hub     *hub
}

// FavoritesDeps wires the backend for the favorites store.
type FavoritesDeps struct {
	Backend Backend
	Key     string
	Logger  *zap.Logger
}

// NewFavorites constructs the favorites store.
func NewFavorites(deps FavoritesDeps) (*Favorites, error) {
	if deps.Backend == nil {
		return nil, errors.New("favorites store: backend is required")
	}
	key := deps.Key
	if key == "" {
		key = FavoritesKey
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Favorites{
		backend: deps.Backend,
		key:     key,
		logger:  logger,
		hub:     newHub(key),
	}, nil
}

// IDs returns the favorited product ids in first-insertion order.
// Unreadable or malformed storage behaves as an empty set.
func (f *Favorites) IDs(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// IsFavorite reports membership for a single product id.
func (f *Favorites) IsFavorite(ctx context.Context, productID string) bool {
	for _, id := range f.IDs(ctx) {
		if id == productID {
			return true
		}
	}
	return false
}

// Toggle flips the product's membership and returns the new full set: a
// present id is removed, an absent id is appended.
func (f *Favorites) Toggle(ctx context.Context, productID string) ([]string, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrFavoritesInvalidInput)
	}

	f.mu.Lock()
	ids := f.load(ctx)
	next := make([]string, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}
	err := f.persist(ctx, next)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	f.hub.notify(false)
	return next, nil
}

// Subscribe registers an in-process listener for favorites changes.
func (f *Favorites) Subscribe(fn func(Change)) func() {
	return f.hub.subscribe(fn)
}

// Version exposes the change counter.
func (f *Favorites) Version() uint64 {
	return f.hub.currentVersion()
}

// Watch pumps cross-process change events into the local hub until the
// context ends.
func (f *Favorites) Watch(ctx context.Context) error {
	events, cancel, err := f.backend.Subscribe(ctx, f.key)
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
			f.hub.notify(true)
		}
	}
}

// load must be called with f.mu held.
func (f *Favorites) load(ctx context.Context) []string {
	data, err := f.backend.Load(ctx, f.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			f.logger.Warn("favorites read failed, treating as empty", zap.Error(err))
		}
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		f.logger.Warn("favorites data malformed, treating as empty", zap.Error(err))
		return []string{}
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// persist must be called with f.mu held.
func (f *Favorites) persist(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFavoritesUnavailable, err)
	}
	if err := f.backend.Store(ctx, f.key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrFavoritesUnavailable, err)
	}
	return nil
}
