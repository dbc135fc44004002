package store

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process Backend used by tests and by single-node
// deployments that opt out of Redis. It honours the same contract,
// including not echoing a subscriber's own process writes: since there is
// only one process, subscribers simply never receive events.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend constructs an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Load returns a copy of the stored blob or ErrNotFound.
func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	dup := make([]byte, len(data))
	copy(dup, data)
	return dup, nil
}

// Store replaces the blob under key.
func (b *MemoryBackend) Store(_ context.Context, key string, data []byte) error {
	dup := make([]byte, len(data))
	copy(dup, data)
	b.mu.Lock()
	b.data[key] = dup
	b.mu.Unlock()
	return nil
}

// Subscribe returns a channel that never delivers: the only writer is this
// process, and own writes are not echoed.
func (b *MemoryBackend) Subscribe(_ context.Context, _ string) (<-chan Event, func(), error) {
	events := make(chan Event)
	var once sync.Once
	cancel := func() { once.Do(func() { close(events) }) }
	return events, cancel, nil
}

// Seed installs raw bytes under a key, bypassing the JSON layer. Tests use
// it to simulate corrupt or externally written state.
func (b *MemoryBackend) Seed(key string, data []byte) {
	b.mu.Lock()
	b.data[key] = append([]byte(nil), data...)
	b.mu.Unlock()
}
