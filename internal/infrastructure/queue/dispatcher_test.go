package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
)

type recordingHandler struct {
	mu      sync.Mutex
	got     []domain.Notification
	err     error
	release chan struct{}
	done    chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{done: make(chan struct{}, 64)}
}

func (h *recordingHandler) Handle(ctx context.Context, n domain.Notification) error {
	if h.release != nil {
		select {
		case <-h.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	h.mu.Lock()
	h.got = append(h.got, n)
	h.mu.Unlock()
	h.done <- struct{}{}
	return h.err
}

func (h *recordingHandler) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d notifications", i, n)
		}
	}
}

func TestDispatcher_DeliversInOrderPerActor(t *testing.T) {
	h := newRecordingHandler()
	d := NewDispatcher(4, h, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for _, name := range []string{"first", "second", "third"} {
		d.Notify(domain.Notification{Kind: domain.NotificationProviderRegistered, ActorID: "p1", Name: name})
	}
	h.waitFor(t, 3)
	cancel()
	d.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, want := range []string{"first", "second", "third"} {
		if h.got[i].Name != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, h.got[i].Name)
		}
	}
}

func TestDispatcher_HandlerErrorDoesNotStopWorker(t *testing.T) {
	h := newRecordingHandler()
	h.err = errors.New("smtp down")
	d := NewDispatcher(1, h, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Notify(domain.Notification{ActorID: "p1"})
	d.Notify(domain.Notification{ActorID: "p2"})
	h.waitFor(t, 2)
	cancel()
	d.Wait()
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	h := newRecordingHandler()
	h.release = make(chan struct{})
	d := newDispatcher(1, 1, h, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		d.Wait()
	}()
	d.Start(ctx)

	returned := make(chan struct{})
	go func() {
		// One in flight, one buffered, the rest dropped.
		for i := 0; i < 10; i++ {
			d.Notify(domain.Notification{ActorID: "p1"})
		}
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	close(h.release)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, newRecordingHandler(), zerolog.Nop())
	first := d.shardIndex("actor-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("actor-42"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard %d out of range", first)
	}
}
