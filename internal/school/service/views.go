package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/scope"
	"github.com/campuskit/homeroom/internal/school/store"
)

// ErrViewsStopped rejects Watch calls after the view service shut down.
var ErrViewsStopped = errors.New("view service stopped")

// Views is one filtered snapshot of everything the session may see. Seq
// increases with every change, so stream consumers can drop stale frames.
type Views struct {
	Seq           uint64
	Classes       []domain.Class
	Students      []domain.Student
	Announcements []domain.Announcement
}

// ViewService keeps live watches on the shared collections and caches the
// latest raw snapshots. Filtering happens on read, as a pure function of
// the current session and the cached data, so a view is never computed
// against a stale scope. Whenever the session changes, the store
// subscriptions are replaced rather than reused.
type ViewService struct {
	Store    store.Store
	Sessions *SessionService
	Logger   *slog.Logger

	mu            sync.RWMutex
	classes       []domain.Class
	students      []domain.Student
	announcements []domain.Announcement
	seq           uint64

	watchMu  sync.Mutex
	watchers map[int]chan struct{}
	nextID   int
	stopped  bool

	kick   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewViewService(st store.Store, sessions *SessionService, logger *slog.Logger) *ViewService {
	v := &ViewService{
		Store:    st,
		Sessions: sessions,
		Logger:   logger,
		watchers: make(map[int]chan struct{}),
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	sessions.OnChange(v.sessionChanged)
	return v
}

// Start loads the first snapshots and begins watching for changes. Call it
// after migrations and bootstrap, before serving traffic.
func (v *ViewService) Start() {
	v.reloadAll(context.Background())
	go v.run()
	v.Logger.Info("view service started")
}

// Stop ends the watches and wakes every stream consumer one last time.
// Blocks until the worker is done.
func (v *ViewService) Stop() {
	close(v.stopCh)
	<-v.doneCh
	v.closeWatchers()
	v.Logger.Info("view service stopped")
}

// Snapshot computes what the current session is allowed to see from the
// latest raw data.
func (v *ViewService) Snapshot() Views {
	sess, _ := v.Sessions.Current()

	v.mu.RLock()
	classes := v.classes
	students := v.students
	announcements := v.announcements
	seq := v.seq
	v.mu.RUnlock()

	return Views{
		Seq:           seq,
		Classes:       scope.Classes(sess, classes),
		Students:      scope.Students(sess, classes, students),
		Announcements: scope.Announcements(sess, classes, announcements),
	}
}

// Watch returns a subscription that ticks whenever the visible views may
// have changed, because data arrived or the session switched. The channel
// closes when the subscription ends.
func (v *ViewService) Watch(ctx context.Context) (*store.Subscription, error) {
	v.watchMu.Lock()
	if v.stopped {
		v.watchMu.Unlock()
		return nil, ErrViewsStopped
	}
	id := v.nextID
	v.nextID++
	ch := make(chan struct{}, 1)
	v.watchers[id] = ch
	v.watchMu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			v.watchMu.Lock()
			if _, live := v.watchers[id]; live {
				delete(v.watchers, id)
				close(ch)
			}
			v.watchMu.Unlock()
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

	return store.NewSubscription(ch, cancel), nil
}

func (v *ViewService) sessionChanged(domain.Session) {
	// Replace the store subscriptions for the new filtering context, and
	// wake stream consumers so they re-render immediately.
	select {
	case v.kick <- struct{}{}:
	default:
	}

	v.mu.Lock()
	v.seq++
	v.mu.Unlock()
	v.notifyWatchers()
}

type collectionSubs struct {
	classes       *store.Subscription
	students      *store.Subscription
	announcements *store.Subscription
}

func (c collectionSubs) cancelAll() {
	c.classes.Cancel()
	c.students.Cancel()
	c.announcements.Cancel()
}

func (v *ViewService) run() {
	defer close(v.doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-v.stopCh
		cancel()
	}()

	for {
		subs, err := v.subscribeAll(ctx)
		if err != nil {
			if v.stopping() {
				return
			}
			v.Logger.Error("collection watch failed, retrying", slog.Any("error", err))
			select {
			case <-v.stopCh:
				return
			case <-time.After(time.Second):
			}
			continue
		}

		// Catch anything written between subscribing and now.
		v.reloadAll(ctx)

		again := v.pump(ctx, subs)
		subs.cancelAll()
		if !again {
			return
		}
	}
}

// pump consumes change ticks until the filtering context changes (returns
// true, caller re-subscribes) or the service stops (returns false).
func (v *ViewService) pump(ctx context.Context, subs collectionSubs) bool {
	for {
		select {
		case <-v.stopCh:
			return false
		case <-v.kick:
			return true
		case _, ok := <-subs.classes.C:
			if !ok {
				return !v.stopping()
			}
			v.reload(ctx, domain.CollectionClasses)
		case _, ok := <-subs.students.C:
			if !ok {
				return !v.stopping()
			}
			v.reload(ctx, domain.CollectionStudents)
		case _, ok := <-subs.announcements.C:
			if !ok {
				return !v.stopping()
			}
			v.reload(ctx, domain.CollectionAnnouncements)
		}
	}
}

func (v *ViewService) stopping() bool {
	select {
	case <-v.stopCh:
		return true
	default:
		return false
	}
}

func (v *ViewService) subscribeAll(ctx context.Context) (collectionSubs, error) {
	classes, err := v.Store.Watch(ctx, domain.CollectionClasses)
	if err != nil {
		return collectionSubs{}, err
	}
	students, err := v.Store.Watch(ctx, domain.CollectionStudents)
	if err != nil {
		classes.Cancel()
		return collectionSubs{}, err
	}
	announcements, err := v.Store.Watch(ctx, domain.CollectionAnnouncements)
	if err != nil {
		classes.Cancel()
		students.Cancel()
		return collectionSubs{}, err
	}
	return collectionSubs{classes: classes, students: students, announcements: announcements}, nil
}

func (v *ViewService) reloadAll(ctx context.Context) {
	v.reload(ctx, domain.CollectionClasses)
	v.reload(ctx, domain.CollectionStudents)
	v.reload(ctx, domain.CollectionAnnouncements)
}

// reload re-lists one collection. On failure the previous snapshot stays
// in place; the next tick retries.
func (v *ViewService) reload(ctx context.Context, c domain.Collection) {
	switch c {
	case domain.CollectionClasses:
		list, err := v.Store.Classes().ListClasses(ctx)
		if err != nil {
			v.Logger.Error("classes reload failed", slog.Any("error", err))
			return
		}
		v.mu.Lock()
		v.classes = list
		v.seq++
		v.mu.Unlock()
	case domain.CollectionStudents:
		recs, err := v.Store.Students().ListStudents(ctx)
		if err != nil {
			v.Logger.Error("students reload failed", slog.Any("error", err))
			return
		}
		// Strip credentials before anything downstream sees the snapshot.
		list := make([]domain.Student, len(recs))
		for i, rec := range recs {
			list[i] = rec.Entity()
		}
		v.mu.Lock()
		v.students = list
		v.seq++
		v.mu.Unlock()
	case domain.CollectionAnnouncements:
		list, err := v.Store.Announcements().ListAnnouncements(ctx)
		if err != nil {
			v.Logger.Error("announcements reload failed", slog.Any("error", err))
			return
		}
		v.mu.Lock()
		v.announcements = list
		v.seq++
		v.mu.Unlock()
	}

	v.notifyWatchers()
}

func (v *ViewService) notifyWatchers() {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()
	for _, ch := range v.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (v *ViewService) closeWatchers() {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()
	if v.stopped {
		return
	}
	v.stopped = true
	for id, ch := range v.watchers {
		delete(v.watchers, id)
		close(ch)
	}
}
