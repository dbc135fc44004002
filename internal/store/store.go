// Package store persists the two storefront collections (cart and
// favorites) and propagates their changes. Each collection is one JSON
// blob under a well-known key; every mutation writes the whole collection
// back synchronously, so storage never holds a partially written multi-key
// state. Other consumers read the same keys directly, which makes the
// serialized shape a stable wire format.
//
// Changes fan out on two paths: an in-process subscription (immediate,
// read-after-write consistent) and the backend's own change channel
// (eventual, cross-process). The backend channel does not echo a process's
// own writes, mirroring how native storage events skip the originating
// view, so in-process consumers must rely on the in-process path.
package store

import (
	"context"
	"errors"
	"sync"
)

// Well-known collection keys. External readers depend on them.
const (
	CartKey      = "cart"
	FavoritesKey = "favorites"
)

// ErrNotFound is returned by Backend.Load when the key holds no data.
var ErrNotFound = errors.New("store: key not found")

// Event signals that a key's data changed in another process.
type Event struct {
	Key string
	// Origin identifies the backend instance that performed the write.
	Origin string
}

// Backend persists one opaque blob per key and delivers cross-process
// change events. Writes are atomic per key; last writer wins without
// merging, which is acceptable for collections owned by one person.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, data []byte) error
	// Subscribe delivers change events for the key until cancel is called
	// or the context ends. A process's own writes are not echoed.
	Subscribe(ctx context.Context, key string) (<-chan Event, func(), error)
}

// Change describes a local collection update delivered to subscribers.
type Change struct {
	Key     string
	Version uint64
	// Remote marks changes observed via the backend channel rather than
	// performed by this process.
	Remote bool
}

// hub tracks subscribers and the collection's change counter. The counter
// makes the eventual-consistency contract observable: every mutation, local
// or remote, bumps it.
type hub struct {
	mu      sync.Mutex
	key     string
	version uint64
	nextID  int
	subs    map[int]func(Change)
}

func newHub(key string) *hub {
	return &hub{key: key, subs: make(map[int]func(Change))}
}

func (h *hub) subscribe(fn func(Change)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// notify bumps the version and invokes subscribers outside the lock, so a
// subscriber may read the store again without deadlocking.
func (h *hub) notify(remote bool) {
	h.mu.Lock()
	h.version++
	change := Change{Key: h.key, Version: h.version, Remote: remote}
	fns := make([]func(Change), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(change)
	}
}

func (h *hub) currentVersion() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}
