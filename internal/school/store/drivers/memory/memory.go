// Package memory is the in-process store driver. It backs unit tests and
// the zero-config dev setup; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
)

type Store struct {
	mu     sync.RWMutex
	closed bool
	hub    *store.Hub

	admin         *domain.AdminRecord
	teachers      map[idx.ID]domain.TeacherRecord
	students      map[idx.ID]domain.StudentRecord
	classes       map[idx.ID]domain.Class
	announcements map[idx.ID]domain.Announcement
}

func NewStore() *Store {
	return &Store{
		hub:           store.NewHub(),
		teachers:      make(map[idx.ID]domain.TeacherRecord),
		students:      make(map[idx.ID]domain.StudentRecord),
		classes:       make(map[idx.ID]domain.Class),
		announcements: make(map[idx.ID]domain.Announcement),
	}
}

func (s *Store) Admin() store.Admin                 { return adminRepo{s} }
func (s *Store) Teachers() store.Teachers           { return teachersRepo{s} }
func (s *Store) Students() store.Students           { return studentsRepo{s} }
func (s *Store) Classes() store.Classes             { return classesRepo{s} }
func (s *Store) Announcements() store.Announcements { return announcementsRepo{s} }

func (s *Store) Watch(ctx context.Context, c domain.Collection) (*store.Subscription, error) {
	return s.hub.Subscribe(ctx, c)
}

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.hub.Close()
	return nil
}

func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

type adminRepo struct{ s *Store }

func (r adminRepo) GetAdmin(context.Context) (domain.AdminRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return domain.AdminRecord{}, store.ErrClosed
	}
	if r.s.admin == nil {
		return domain.AdminRecord{}, store.ErrNotFound
	}
	return *r.s.admin, nil
}

func (r adminRepo) PutAdmin(_ context.Context, rec domain.AdminRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.closed {
		return store.ErrClosed
	}
	r.s.admin = &rec
	return nil
}

type teachersRepo struct{ s *Store }

func (r teachersRepo) ListTeachers(context.Context) ([]domain.TeacherRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return nil, store.ErrClosed
	}
	out := make([]domain.TeacherRecord, 0, len(r.s.teachers))
	for _, key := range sortedKeys(r.s.teachers) {
		out = append(out, cloneTeacher(r.s.teachers[key]))
	}
	return out, nil
}

func (r teachersRepo) GetTeacher(_ context.Context, key idx.ID) (domain.TeacherRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return domain.TeacherRecord{}, store.ErrClosed
	}
	rec, ok := r.s.teachers[key]
	if !ok {
		return domain.TeacherRecord{}, store.ErrNotFound
	}
	return cloneTeacher(rec), nil
}

func (r teachersRepo) AddTeacher(_ context.Context, rec domain.TeacherRecord) (idx.ID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.closed {
		return idx.Zero, store.ErrClosed
	}
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}
	r.s.teachers[rec.Key] = cloneTeacher(rec)
	return rec.Key, nil
}

func (r teachersRepo) UpdateTeacher(_ context.Context, rec domain.TeacherRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.closed {
		return store.ErrClosed
	}
	if _, ok := r.s.teachers[rec.Key]; !ok {
		return store.ErrNotFound
	}
	r.s.teachers[rec.Key] = cloneTeacher(rec)
	return nil
}

type studentsRepo struct{ s *Store }

func (r studentsRepo) ListStudents(context.Context) ([]domain.StudentRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return nil, store.ErrClosed
	}
	out := make([]domain.StudentRecord, 0, len(r.s.students))
	for _, key := range sortedKeys(r.s.students) {
		out = append(out, r.s.students[key])
	}
	return out, nil
}

func (r studentsRepo) GetStudent(_ context.Context, key idx.ID) (domain.StudentRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return domain.StudentRecord{}, store.ErrClosed
	}
	rec, ok := r.s.students[key]
	if !ok {
		return domain.StudentRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (r studentsRepo) AddStudent(_ context.Context, rec domain.StudentRecord) (idx.ID, error) {
	r.s.mu.Lock()
	if r.s.closed {
		r.s.mu.Unlock()
		return idx.Zero, store.ErrClosed
	}
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}
	r.s.students[rec.Key] = rec
	r.s.mu.Unlock()

	r.s.hub.Notify(domain.CollectionStudents)
	return rec.Key, nil
}

func (r studentsRepo) UpdateStudent(_ context.Context, rec domain.StudentRecord) error {
	r.s.mu.Lock()
	if r.s.closed {
		r.s.mu.Unlock()
		return store.ErrClosed
	}
	if _, ok := r.s.students[rec.Key]; !ok {
		r.s.mu.Unlock()
		return store.ErrNotFound
	}
	r.s.students[rec.Key] = rec
	r.s.mu.Unlock()

	r.s.hub.Notify(domain.CollectionStudents)
	return nil
}

type classesRepo struct{ s *Store }

func (r classesRepo) ListClasses(context.Context) ([]domain.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return nil, store.ErrClosed
	}
	out := make([]domain.Class, 0, len(r.s.classes))
	for _, key := range sortedKeys(r.s.classes) {
		out = append(out, r.s.classes[key])
	}
	return out, nil
}

func (r classesRepo) GetClass(_ context.Context, key idx.ID) (domain.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return domain.Class{}, store.ErrClosed
	}
	c, ok := r.s.classes[key]
	if !ok {
		return domain.Class{}, store.ErrNotFound
	}
	return c, nil
}

func (r classesRepo) AddClass(_ context.Context, c domain.Class) (idx.ID, error) {
	r.s.mu.Lock()
	if r.s.closed {
		r.s.mu.Unlock()
		return idx.Zero, store.ErrClosed
	}
	if c.Key.IsZero() {
		c.Key = idx.New()
	}
	r.s.classes[c.Key] = c
	r.s.mu.Unlock()

	r.s.hub.Notify(domain.CollectionClasses)
	return c.Key, nil
}

type announcementsRepo struct{ s *Store }

func (r announcementsRepo) ListAnnouncements(context.Context) ([]domain.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return nil, store.ErrClosed
	}
	out := make([]domain.Announcement, 0, len(r.s.announcements))
	for _, key := range sortedKeys(r.s.announcements) {
		out = append(out, r.s.announcements[key])
	}
	return out, nil
}

func (r announcementsRepo) GetAnnouncement(_ context.Context, key idx.ID) (domain.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return domain.Announcement{}, store.ErrClosed
	}
	a, ok := r.s.announcements[key]
	if !ok {
		return domain.Announcement{}, store.ErrNotFound
	}
	return a, nil
}

func (r announcementsRepo) AddAnnouncement(_ context.Context, a domain.Announcement) (idx.ID, error) {
	r.s.mu.Lock()
	if r.s.closed {
		r.s.mu.Unlock()
		return idx.Zero, store.ErrClosed
	}
	if a.Key.IsZero() {
		a.Key = idx.New()
	}
	r.s.announcements[a.Key] = a
	r.s.mu.Unlock()

	r.s.hub.Notify(domain.CollectionAnnouncements)
	return a.Key, nil
}

// cloneTeacher deep-copies the assigned class slice so callers cannot alias
// stored state.
func cloneTeacher(rec domain.TeacherRecord) domain.TeacherRecord {
	if rec.AssignedClassIDs != nil {
		rec.AssignedClassIDs = append([]idx.ID(nil), rec.AssignedClassIDs...)
	}
	return rec
}

func sortedKeys[V any](m map[idx.ID]V) []idx.ID {
	keys := make([]idx.ID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return idx.Compare(keys[i], keys[j]) < 0 })
	return keys
}
