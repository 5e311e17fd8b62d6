// Package redis is the store driver for shared deployments: several daemons
// pointing at one Redis see the same roster, and change ticks travel over
// pub/sub so every process notices every write.
package redis

import (
	"context"
	"sync"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/redis/go-redis/v9"
)

const defaultNamespace = "homeroom"

type Store struct {
	rdb *redis.Client
	ns  string

	mu      sync.Mutex
	closed  bool
	watches map[*redis.PubSub]struct{}
}

// NewStore connects to the Redis named by url (redis://host:port/db form).
// All keys live under the given namespace so unrelated tenants can share a
// server.
func NewStore(url, namespace string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Store{
		rdb:     redis.NewClient(opts),
		ns:      namespace,
		watches: make(map[*redis.PubSub]struct{}),
	}, nil
}

// ApplyMigrations is a no-op: Redis has no schema to prepare.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	open := make([]*redis.PubSub, 0, len(s.watches))
	for ps := range s.watches {
		open = append(open, ps)
	}
	s.watches = nil
	s.mu.Unlock()

	for _, ps := range open {
		_ = ps.Close()
	}
	return s.rdb.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Watch subscribes to the collection's change channel. The subscription is
// confirmed with the server before Watch returns, so a write issued
// afterwards is guaranteed to tick.
func (s *Store) Watch(ctx context.Context, c domain.Collection) (*store.Subscription, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, store.ErrClosed
	}
	pubsub := s.rdb.Subscribe(ctx, s.channel(c))
	s.watches[pubsub] = struct{}{}
	s.mu.Unlock()

	if _, err := pubsub.Receive(ctx); err != nil {
		s.dropWatch(pubsub)
		_ = pubsub.Close()
		return nil, err
	}

	ticks := make(chan struct{}, 1)
	go func() {
		defer close(ticks)
		for range pubsub.Channel() {
			select {
			case ticks <- struct{}{}:
			default:
			}
		}
	}()

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			s.dropWatch(pubsub)
			_ = pubsub.Close()
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

	return store.NewSubscription(ticks, cancel), nil
}

func (s *Store) dropWatch(ps *redis.PubSub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watches != nil {
		delete(s.watches, ps)
	}
}

func (s *Store) key(name string) string {
	return s.ns + ":" + name
}

func (s *Store) channel(c domain.Collection) string {
	return s.ns + ":changes:" + c.String()
}

// publish fans a change tick out to every daemon watching the collection.
// Best effort: the write already landed, a missed tick only delays the next
// refresh.
func (s *Store) publish(ctx context.Context, c domain.Collection) {
	_ = s.rdb.Publish(ctx, s.channel(c), "1").Err()
}

func (s *Store) Admin() store.Admin                 { return adminRepo{s} }
func (s *Store) Teachers() store.Teachers           { return teachersRepo{s} }
func (s *Store) Students() store.Students           { return studentsRepo{s} }
func (s *Store) Classes() store.Classes             { return classesRepo{s} }
func (s *Store) Announcements() store.Announcements { return announcementsRepo{s} }
