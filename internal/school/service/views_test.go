package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/slot"
	"github.com/campuskit/homeroom/internal/school/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type viewStack struct {
	store    *memory.Store
	sessions *SessionService
	views    *ViewService
}

func newViewStack(t *testing.T) viewStack {
	t.Helper()

	st := memory.NewStore()
	t.Cleanup(func() { _ = st.Close() })

	sessions := newSessionServiceWith(t, st, slot.NewMemory())
	views := NewViewService(st, sessions, discardLogger())
	views.Start()
	t.Cleanup(views.Stop)

	return viewStack{store: st, sessions: sessions, views: views}
}

func TestSnapshotFollowsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stack := newViewStack(t)
	seedAdmin(t, stack.store)
	marie := seedTeacher(t, stack.store, domain.TeacherRecord{Name: "Marie", Username: "marie", Password: "pw"})
	mine := seedClass(t, stack.store, domain.Class{Name: "7a", TeacherID: marie.Key})
	other := seedClass(t, stack.store, domain.Class{Name: "7b"})
	seedStudent(t, stack.store, domain.StudentRecord{Name: "Ana", Username: "ana", Password: "pw", ClassID: mine.Key})
	seedStudent(t, stack.store, domain.StudentRecord{Name: "Ben", Username: "ben", Password: "pw", ClassID: other.Key})

	// Seeding happened after Start, so wait for the watches to catch up.
	// The raw caches are checked directly; Snapshot would hide them behind
	// the not-yet-authenticated scope.
	require.Eventually(t, func() bool {
		v := stack.views
		v.mu.RLock()
		defer v.mu.RUnlock()
		return len(v.classes) == 2 && len(v.students) == 2
	}, 2*time.Second, 10*time.Millisecond)

	t.Run("no session sees nothing", func(t *testing.T) {
		v := stack.views.Snapshot()
		require.Empty(t, v.Classes)
		require.Empty(t, v.Students)
		require.Empty(t, v.Announcements)
	})

	t.Run("teacher session sees only the taught class", func(t *testing.T) {
		_, _, err := stack.sessions.Login(ctx, "marie", "pw")
		require.NoError(t, err)

		v := stack.views.Snapshot()
		require.Len(t, v.Classes, 1)
		require.Equal(t, mine.Key, v.Classes[0].Key)
		require.Len(t, v.Students, 1)
		require.Equal(t, "Ana", v.Students[0].Name)
	})

	t.Run("admin session replacing it sees everything", func(t *testing.T) {
		_, _, err := stack.sessions.Login(ctx, "head", "head-pass")
		require.NoError(t, err)

		v := stack.views.Snapshot()
		require.Len(t, v.Classes, 2)
		require.Len(t, v.Students, 2)
	})

	t.Run("logout empties the views again", func(t *testing.T) {
		stack.sessions.Logout(ctx)

		v := stack.views.Snapshot()
		require.Empty(t, v.Classes)
		require.Empty(t, v.Students)
	})
}

func TestViewsFollowStoreAppends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stack := newViewStack(t)
	seedAdmin(t, stack.store)
	_, _, err := stack.sessions.Login(ctx, "head", "head-pass")
	require.NoError(t, err)

	sub, err := stack.views.Watch(ctx)
	require.NoError(t, err)
	defer sub.Cancel()

	seedClass(t, stack.store, domain.Class{Name: "8c"})

	select {
	case <-sub.C:
	case <-time.After(2 * time.Second):
		t.Fatal("no view tick after a class append")
	}

	require.Eventually(t, func() bool {
		v := stack.views.Snapshot()
		return len(v.Classes) == 1 && v.Classes[0].Name == "8c"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestViewsSurviveSessionSwitches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stack := newViewStack(t)
	seedAdmin(t, stack.store)

	// Every session transition replaces the store subscriptions. Appends
	// landing after a switch must still come through the fresh ones.
	_, _, err := stack.sessions.Login(ctx, "head", "head-pass")
	require.NoError(t, err)
	seedClass(t, stack.store, domain.Class{Name: "first"})
	require.Eventually(t, func() bool {
		return len(stack.views.Snapshot().Classes) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stack.sessions.Logout(ctx)
	_, _, err = stack.sessions.Login(ctx, "head", "head-pass")
	require.NoError(t, err)

	seedClass(t, stack.store, domain.Class{Name: "second"})
	require.Eventually(t, func() bool {
		return len(stack.views.Snapshot().Classes) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionChangeWakesWatchers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stack := newViewStack(t)
	seedAdmin(t, stack.store)

	sub, err := stack.views.Watch(ctx)
	require.NoError(t, err)
	defer sub.Cancel()

	before := stack.views.Snapshot().Seq

	_, _, err = stack.sessions.Login(ctx, "head", "head-pass")
	require.NoError(t, err)

	select {
	case <-sub.C:
	case <-time.After(2 * time.Second):
		t.Fatal("no view tick after a login")
	}
	require.Greater(t, stack.views.Snapshot().Seq, before)
}

func TestViewWatchLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("cancel closes the channel and is idempotent", func(t *testing.T) {
		stack := newViewStack(t)

		sub, err := stack.views.Watch(ctx)
		require.NoError(t, err)

		sub.Cancel()
		sub.Cancel()
		select {
		case _, ok := <-sub.C:
			require.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel still open after cancel")
		}
	})

	t.Run("context cancellation ends the subscription", func(t *testing.T) {
		stack := newViewStack(t)

		watchCtx, cancel := context.WithCancel(ctx)
		sub, err := stack.views.Watch(watchCtx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-sub.C:
			require.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel still open after context cancellation")
		}
	})

	t.Run("stop closes watchers and rejects new ones", func(t *testing.T) {
		st := memory.NewStore()
		t.Cleanup(func() { _ = st.Close() })
		sessions := newSessionServiceWith(t, st, slot.NewMemory())
		views := NewViewService(st, sessions, discardLogger())
		views.Start()

		sub, err := views.Watch(ctx)
		require.NoError(t, err)

		views.Stop()

		select {
		case _, ok := <-sub.C:
			require.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("channel still open after stop")
		}

		_, err = views.Watch(ctx)
		require.ErrorIs(t, err, ErrViewsStopped)
	})
}
