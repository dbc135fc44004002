package store

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix     = "storefront:collection:"
	defaultChannelPrefix = "storefront:changed:"
)

// RedisBackend persists collections as plain Redis string values and uses
// pub/sub as the storage layer's native change notification. Each backend
// instance carries a unique origin id so its own publishes can be filtered
// out on the subscribe side.
type RedisBackend struct {
	client        *redis.Client
	keyPrefix     string
	channelPrefix string
	origin        string
}

// RedisBackendOption customises the backend.
type RedisBackendOption func(*RedisBackend)

// WithKeyPrefix overrides the namespace prepended to collection keys.
func WithKeyPrefix(prefix string) RedisBackendOption {
	return func(b *RedisBackend) {
		if prefix != "" {
			b.keyPrefix = prefix
		}
	}
}

// WithChannelPrefix overrides the namespace used for change channels.
func WithChannelPrefix(prefix string) RedisBackendOption {
	return func(b *RedisBackend) {
		if prefix != "" {
			b.channelPrefix = prefix
		}
	}
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, opts ...RedisBackendOption) (*RedisBackend, error) {
	if client == nil {
		return nil, errors.New("store: redis client is required")
	}
	backend := &RedisBackend{
		client:        client,
		keyPrefix:     defaultKeyPrefix,
		channelPrefix: defaultChannelPrefix,
		origin:        ulid.Make().String(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(backend)
		}
	}
	return backend, nil
}

// Load fetches the raw collection blob. Absent keys map to ErrNotFound.
func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Store writes the collection blob and publishes a change signal carrying
// this backend's origin id. SET is a single-key atomic write, so readers
// never observe a torn collection.
func (b *RedisBackend) Store(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.keyPrefix+key, data, 0).Err(); err != nil {
		return err
	}
	// Publish failures are not fatal to the write: the data is already
	// durable and pollers will converge on the next read.
	_ = b.client.Publish(ctx, b.channelPrefix+key, b.origin+"|"+key).Err()
	return nil
}

// Subscribe listens on the key's change channel, dropping events published
// by this backend instance. The returned cancel closes the subscription;
// the event channel closes once the pump ends.
func (b *RedisBackend) Subscribe(ctx context.Context, key string) (<-chan Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channelPrefix+key)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	events := make(chan Event, 8)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			origin, eventKey := splitChangePayload(msg.Payload)
			if origin == b.origin {
				continue
			}
			if eventKey == "" {
				eventKey = key
			}
			select {
			case events <- Event{Key: eventKey, Origin: origin}:
			default:
				// A slow consumer never blocks the pump; it will
				// re-read the collection on its next event.
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return events, cancel, nil
}

func splitChangePayload(payload string) (origin, key string) {
	parts := strings.SplitN(payload, "|", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return payload, ""
}
