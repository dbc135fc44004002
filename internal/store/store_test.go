package store

import (
	"context"
	"testing"
	"time"
)

// channelBackend simulates a backend whose change channel delivers events
// written by other processes.
type channelBackend struct {
	*MemoryBackend
	events chan Event
}

func newChannelBackend() *channelBackend {
	return &channelBackend{
		MemoryBackend: NewMemoryBackend(),
		events:        make(chan Event, 8),
	}
}

func (b *channelBackend) Subscribe(_ context.Context, _ string) (<-chan Event, func(), error) {
	return b.events, func() {}, nil
}

func (b *channelBackend) emit(key string) {
	b.events <- Event{Key: key, Origin: "other-process"}
}

func TestWatchDeliversRemoteChanges(t *testing.T) {
	backend := newChannelBackend()
	cart := newTestCart(t, backend)

	received := make(chan Change, 4)
	cancel := cart.Subscribe(func(change Change) {
		received <- change
	})
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cart.Watch(ctx)
	}()

	backend.emit(CartKey)

	select {
	case change := <-received:
		if !change.Remote {
			t.Fatalf("expected remote change, got %+v", change)
		}
		if change.Version != 1 {
			t.Fatalf("expected version 1, got %d", change.Version)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for remote change")
	}

	stop()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch to stop")
	}
}

func TestWatchStopsWhenChannelCloses(t *testing.T) {
	backend := newChannelBackend()
	favorites := newTestFavorites(t, backend)

	done := make(chan error, 1)
	go func() {
		done <- favorites.Watch(context.Background())
	}()

	close(backend.events)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch to stop")
	}
}

func TestLocalAndRemoteChangesShareOneCounter(t *testing.T) {
	backend := newChannelBackend()
	cart := newTestCart(t, backend)

	received := make(chan Change, 4)
	cancel := cart.Subscribe(func(change Change) {
		received <- change
	})
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() { _ = cart.Watch(ctx) }()

	if _, err := cart.Add(context.Background(), "p1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	backend.emit(CartKey)

	versions := make([]uint64, 0, 2)
	for len(versions) < 2 {
		select {
		case change := <-received:
			versions = append(versions, change.Version)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out; got versions %v", versions)
		}
	}

	if versions[0] != 1 || versions[1] != 2 {
		t.Fatalf("expected versions [1 2], got %v", versions)
	}
}
