package store

import (
	"context"
	"sync"

	"github.com/campuskit/homeroom/internal/school/domain"
)

// Subscription is a live watch on one collection. Receive from C to learn
// the collection changed; the channel closes when the subscription ends,
// whether by Cancel, context cancellation, or the store shutting down.
type Subscription struct {
	C <-chan struct{}

	cancel func()
}

// Cancel ends the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// NewSubscription wraps a tick channel and a cancel hook. Drivers with a
// native change feed build subscriptions directly instead of going through
// a Hub.
func NewSubscription(c <-chan struct{}, cancel func()) *Subscription {
	return &Subscription{C: c, cancel: cancel}
}

// Hub fans collection change notifications out to watchers. Drivers whose
// backing store has no native change feed (memory, sqlite) notify the hub
// after each successful write.
type Hub struct {
	mu     sync.Mutex
	subs   map[domain.Collection]map[int]chan struct{}
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[domain.Collection]map[int]chan struct{})}
}

// Subscribe returns a subscription on c that lives until Cancel, ctx
// cancellation, or hub Close.
func (h *Hub) Subscribe(ctx context.Context, c domain.Collection) (*Subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}
	id := h.nextID
	h.nextID++
	ch := make(chan struct{}, 1)
	if h.subs[c] == nil {
		h.subs[c] = make(map[int]chan struct{})
	}
	h.subs[c][id] = ch
	h.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if chans, ok := h.subs[c]; ok {
				if _, live := chans[id]; live {
					delete(chans, id)
					close(ch)
				}
			}
			h.mu.Unlock()
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()

	return &Subscription{C: ch, cancel: cancel}, nil
}

// Notify wakes every watcher of c. Sends are non-blocking: a watcher that
// has not drained its previous tick keeps a single pending one.
func (h *Hub) Notify(c domain.Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[c] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close terminates every subscription. Further Subscribe calls return
// ErrClosed; Notify becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, chans := range h.subs {
		for id, ch := range chans {
			delete(chans, id)
			close(ch)
		}
	}
}
