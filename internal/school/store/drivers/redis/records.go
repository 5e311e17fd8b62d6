package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/redis/go-redis/v9"
)

// Each collection is one hash: field = record key, value = JSON record.
// The admin record is a plain string key because it is not a collection.
const (
	adminKey         = "admin"
	teachersKey      = "teachers"
	studentsKey      = "students"
	classesKey       = "classes"
	announcementsKey = "announcements"
)

type hashEntry struct {
	key   idx.ID
	value []byte
}

func (s *Store) hashList(ctx context.Context, name string) ([]hashEntry, error) {
	raw, err := s.rdb.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]hashEntry, 0, len(raw))
	for field, value := range raw {
		key, err := idx.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("redis: malformed record key %q in %s", field, name)
		}
		entries = append(entries, hashEntry{key: key, value: []byte(value)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return idx.Compare(entries[i].key, entries[j].key) < 0
	})
	return entries, nil
}

func (s *Store) hashGet(ctx context.Context, name string, key idx.ID) ([]byte, error) {
	value, err := s.rdb.HGet(ctx, s.key(name), key.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *Store) hashSet(ctx context.Context, name string, key idx.ID, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.key(name), key.String(), payload).Err()
}

func (s *Store) hashSetExisting(ctx context.Context, name string, key idx.ID, record any) error {
	ok, err := s.rdb.HExists(ctx, s.key(name), key.String()).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return s.hashSet(ctx, name, key, record)
}

type adminRepo struct{ s *Store }

func (r adminRepo) GetAdmin(ctx context.Context) (domain.AdminRecord, error) {
	value, err := r.s.rdb.Get(ctx, r.s.key(adminKey)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.AdminRecord{}, store.ErrNotFound
	}
	if err != nil {
		return domain.AdminRecord{}, err
	}

	var rec domain.AdminRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return domain.AdminRecord{}, err
	}
	return rec, nil
}

func (r adminRepo) PutAdmin(ctx context.Context, rec domain.AdminRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.s.rdb.Set(ctx, r.s.key(adminKey), payload, 0).Err()
}

type teachersRepo struct{ s *Store }

func (r teachersRepo) ListTeachers(ctx context.Context) ([]domain.TeacherRecord, error) {
	entries, err := r.s.hashList(ctx, teachersKey)
	if err != nil {
		return nil, err
	}

	var out []domain.TeacherRecord
	for _, e := range entries {
		var rec domain.TeacherRecord
		if err := json.Unmarshal(e.value, &rec); err != nil {
			return nil, err
		}
		rec.Key = e.key
		out = append(out, rec)
	}
	return out, nil
}

func (r teachersRepo) GetTeacher(ctx context.Context, key idx.ID) (domain.TeacherRecord, error) {
	value, err := r.s.hashGet(ctx, teachersKey, key)
	if err != nil {
		return domain.TeacherRecord{}, err
	}

	var rec domain.TeacherRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return domain.TeacherRecord{}, err
	}
	rec.Key = key
	return rec, nil
}

func (r teachersRepo) AddTeacher(ctx context.Context, rec domain.TeacherRecord) (idx.ID, error) {
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}
	if err := r.s.hashSet(ctx, teachersKey, rec.Key, rec); err != nil {
		return idx.Zero, err
	}
	return rec.Key, nil
}

func (r teachersRepo) UpdateTeacher(ctx context.Context, rec domain.TeacherRecord) error {
	return r.s.hashSetExisting(ctx, teachersKey, rec.Key, rec)
}

type studentsRepo struct{ s *Store }

func (r studentsRepo) ListStudents(ctx context.Context) ([]domain.StudentRecord, error) {
	entries, err := r.s.hashList(ctx, studentsKey)
	if err != nil {
		return nil, err
	}

	var out []domain.StudentRecord
	for _, e := range entries {
		var rec domain.StudentRecord
		if err := json.Unmarshal(e.value, &rec); err != nil {
			return nil, err
		}
		rec.Key = e.key
		out = append(out, rec)
	}
	return out, nil
}

func (r studentsRepo) GetStudent(ctx context.Context, key idx.ID) (domain.StudentRecord, error) {
	value, err := r.s.hashGet(ctx, studentsKey, key)
	if err != nil {
		return domain.StudentRecord{}, err
	}

	var rec domain.StudentRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return domain.StudentRecord{}, err
	}
	rec.Key = key
	return rec, nil
}

func (r studentsRepo) AddStudent(ctx context.Context, rec domain.StudentRecord) (idx.ID, error) {
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}
	if err := r.s.hashSet(ctx, studentsKey, rec.Key, rec); err != nil {
		return idx.Zero, err
	}

	r.s.publish(ctx, domain.CollectionStudents)
	return rec.Key, nil
}

func (r studentsRepo) UpdateStudent(ctx context.Context, rec domain.StudentRecord) error {
	if err := r.s.hashSetExisting(ctx, studentsKey, rec.Key, rec); err != nil {
		return err
	}

	r.s.publish(ctx, domain.CollectionStudents)
	return nil
}

type classesRepo struct{ s *Store }

func (r classesRepo) ListClasses(ctx context.Context) ([]domain.Class, error) {
	entries, err := r.s.hashList(ctx, classesKey)
	if err != nil {
		return nil, err
	}

	var out []domain.Class
	for _, e := range entries {
		var c domain.Class
		if err := json.Unmarshal(e.value, &c); err != nil {
			return nil, err
		}
		c.Key = e.key
		out = append(out, c)
	}
	return out, nil
}

func (r classesRepo) GetClass(ctx context.Context, key idx.ID) (domain.Class, error) {
	value, err := r.s.hashGet(ctx, classesKey, key)
	if err != nil {
		return domain.Class{}, err
	}

	var c domain.Class
	if err := json.Unmarshal(value, &c); err != nil {
		return domain.Class{}, err
	}
	c.Key = key
	return c, nil
}

func (r classesRepo) AddClass(ctx context.Context, c domain.Class) (idx.ID, error) {
	if c.Key.IsZero() {
		c.Key = idx.New()
	}
	if err := r.s.hashSet(ctx, classesKey, c.Key, c); err != nil {
		return idx.Zero, err
	}

	r.s.publish(ctx, domain.CollectionClasses)
	return c.Key, nil
}

type announcementsRepo struct{ s *Store }

func (r announcementsRepo) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	entries, err := r.s.hashList(ctx, announcementsKey)
	if err != nil {
		return nil, err
	}

	var out []domain.Announcement
	for _, e := range entries {
		var a domain.Announcement
		if err := json.Unmarshal(e.value, &a); err != nil {
			return nil, err
		}
		a.Key = e.key
		out = append(out, a)
	}
	return out, nil
}

func (r announcementsRepo) GetAnnouncement(ctx context.Context, key idx.ID) (domain.Announcement, error) {
	value, err := r.s.hashGet(ctx, announcementsKey, key)
	if err != nil {
		return domain.Announcement{}, err
	}

	var a domain.Announcement
	if err := json.Unmarshal(value, &a); err != nil {
		return domain.Announcement{}, err
	}
	a.Key = key
	return a, nil
}

func (r announcementsRepo) AddAnnouncement(ctx context.Context, a domain.Announcement) (idx.ID, error) {
	if a.Key.IsZero() {
		a.Key = idx.New()
	}
	if err := r.s.hashSet(ctx, announcementsKey, a.Key, a); err != nil {
		return idx.Zero, err
	}

	r.s.publish(ctx, domain.CollectionAnnouncements)
	return a.Key, nil
}
