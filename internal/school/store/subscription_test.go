package store

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/stretchr/testify/require"
)

func recvTick(t *testing.T, sub *Subscription) bool {
	t.Helper()
	select {
	case _, ok := <-sub.C:
		require.True(t, ok, "subscription closed while expecting a tick")
		return true
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return false
	}
}

func requireClosed(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case _, ok := <-sub.C:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHubNotify(t *testing.T) {
	t.Parallel()

	t.Run("notify wakes watchers of the collection", func(t *testing.T) {
		h := NewHub()
		t.Cleanup(h.Close)

		sub, err := h.Subscribe(context.Background(), domain.CollectionClasses)
		require.NoError(t, err)
		t.Cleanup(sub.Cancel)

		h.Notify(domain.CollectionClasses)
		recvTick(t, sub)
	})

	t.Run("other collections stay quiet", func(t *testing.T) {
		h := NewHub()
		t.Cleanup(h.Close)

		sub, err := h.Subscribe(context.Background(), domain.CollectionClasses)
		require.NoError(t, err)
		t.Cleanup(sub.Cancel)

		h.Notify(domain.CollectionStudents)
		select {
		case <-sub.C:
			t.Fatal("tick for a collection the watcher never asked about")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("ticks coalesce", func(t *testing.T) {
		h := NewHub()
		t.Cleanup(h.Close)

		sub, err := h.Subscribe(context.Background(), domain.CollectionAnnouncements)
		require.NoError(t, err)
		t.Cleanup(sub.Cancel)

		h.Notify(domain.CollectionAnnouncements)
		h.Notify(domain.CollectionAnnouncements)
		h.Notify(domain.CollectionAnnouncements)

		recvTick(t, sub)
		select {
		case <-sub.C:
			// Three notifies before the first receive collapse into one.
			t.Fatal("coalesced notifies queued more than one tick")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestHubSubscriptionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("cancel closes the channel and is idempotent", func(t *testing.T) {
		h := NewHub()
		t.Cleanup(h.Close)

		sub, err := h.Subscribe(context.Background(), domain.CollectionClasses)
		require.NoError(t, err)

		sub.Cancel()
		requireClosed(t, sub)
		sub.Cancel()

		// Cancelled watchers never see later notifies.
		h.Notify(domain.CollectionClasses)
	})

	t.Run("context cancellation ends the subscription", func(t *testing.T) {
		h := NewHub()
		t.Cleanup(h.Close)

		ctx, cancel := context.WithCancel(context.Background())
		sub, err := h.Subscribe(ctx, domain.CollectionStudents)
		require.NoError(t, err)
		t.Cleanup(sub.Cancel)

		cancel()
		requireClosed(t, sub)
	})

	t.Run("hub close terminates watchers and rejects new ones", func(t *testing.T) {
		h := NewHub()

		sub, err := h.Subscribe(context.Background(), domain.CollectionClasses)
		require.NoError(t, err)
		t.Cleanup(sub.Cancel)

		h.Close()
		requireClosed(t, sub)

		_, err = h.Subscribe(context.Background(), domain.CollectionClasses)
		require.ErrorIs(t, err, ErrClosed)

		h.Close()
	})
}
