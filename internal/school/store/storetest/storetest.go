// Package storetest runs one behavioural suite against every store driver.
// Driver test files call Run with a factory; the suite only goes through
// the store.Store interface, so anything it catches is a contract breach,
// not a driver quirk.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory opens a fresh, migrated, empty store. Cleanup is the caller's
// job, usually via t.Cleanup inside the factory.
type Factory func(t *testing.T) store.Store

// Run exercises the full store contract against the driver behind open.
func Run(t *testing.T, open Factory) {
	t.Run("admin record", func(t *testing.T) { testAdmin(t, open) })
	t.Run("teachers collection", func(t *testing.T) { testTeachers(t, open) })
	t.Run("students collection", func(t *testing.T) { testStudents(t, open) })
	t.Run("classes collection", func(t *testing.T) { testClasses(t, open) })
	t.Run("announcements collection", func(t *testing.T) { testAnnouncements(t, open) })
	t.Run("watch", func(t *testing.T) { testWatch(t, open) })
	t.Run("lifecycle", func(t *testing.T) { testLifecycle(t, open) })
}

func testAdmin(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	_, err := s.Admin().GetAdmin(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	rec := domain.AdminRecord{ID: idx.New(), Username: "principal", Password: "open sesame", Name: "The Principal"}
	require.NoError(t, s.Admin().PutAdmin(ctx, rec))

	got, err := s.Admin().GetAdmin(ctx)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	rec.Name = "Acting Principal"
	require.NoError(t, s.Admin().PutAdmin(ctx, rec))

	got, err = s.Admin().GetAdmin(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acting Principal", got.Name)
}

func testTeachers(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	_, err := s.Teachers().GetTeacher(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)

	classA, classB := idx.New(), idx.New()

	rec := domain.TeacherRecord{
		Name:             "Dana Field",
		Username:         "dfield",
		Password:         "chalkdust",
		Subject:          "Physics",
		IsSupervisor:     true,
		AssignedClassIDs: []idx.ID{classA, classB},
	}
	key, err := s.Teachers().AddTeacher(ctx, rec)
	require.NoError(t, err)
	require.False(t, key.IsZero())

	got, err := s.Teachers().GetTeacher(ctx, key)
	require.NoError(t, err)
	rec.Key = key
	require.Equal(t, rec, got)

	// A caller-provided key is honored.
	fixed := idx.New()
	key2, err := s.Teachers().AddTeacher(ctx, domain.TeacherRecord{Key: fixed, Name: "Sam Ode", Username: "sode", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, fixed, key2)

	list, err := s.Teachers().ListTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for i := 1; i < len(list); i++ {
		require.Negative(t, idx.Compare(list[i-1].Key, list[i].Key), "list must come back in ascending key order")
	}

	rec.Subject = "Astronomy"
	rec.AssignedClassIDs = []idx.ID{classB}
	require.NoError(t, s.Teachers().UpdateTeacher(ctx, rec))

	got, err = s.Teachers().GetTeacher(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "Astronomy", got.Subject)
	require.Equal(t, []idx.ID{classB}, got.AssignedClassIDs)

	err = s.Teachers().UpdateTeacher(ctx, domain.TeacherRecord{Key: idx.New(), Username: "ghost"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testStudents(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	class := idx.New()

	rec := domain.StudentRecord{Name: "Milo Trent", Username: "mtrent", Password: "pencilcase", ClassID: class}
	key, err := s.Students().AddStudent(ctx, rec)
	require.NoError(t, err)
	require.False(t, key.IsZero())

	got, err := s.Students().GetStudent(ctx, key)
	require.NoError(t, err)
	rec.Key = key
	require.Equal(t, rec, got)
	require.False(t, got.PasswordChanged)

	rec.Password = "better one"
	rec.PasswordChanged = true
	require.NoError(t, s.Students().UpdateStudent(ctx, rec))

	got, err = s.Students().GetStudent(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "better one", got.Password)
	require.True(t, got.PasswordChanged)

	_, err = s.Students().GetStudent(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Students().UpdateStudent(ctx, domain.StudentRecord{Key: idx.New(), Username: "ghost"})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Students().AddStudent(ctx, domain.StudentRecord{Name: "Ana Reyes", Username: "areyes", Password: "y", ClassID: class})
	require.NoError(t, err)

	list, err := s.Students().ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "mtrent", list[0].Username)
	require.Equal(t, "areyes", list[1].Username)
}

func testClasses(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	teacher := idx.New()

	key, err := s.Classes().AddClass(ctx, domain.Class{Name: "Year 4 Blue", TeacherID: teacher})
	require.NoError(t, err)

	got, err := s.Classes().GetClass(ctx, key)
	require.NoError(t, err)
	require.Equal(t, domain.Class{Key: key, Name: "Year 4 Blue", TeacherID: teacher}, got)

	_, err = s.Classes().AddClass(ctx, domain.Class{Name: "Year 5 Red"})
	require.NoError(t, err)

	list, err := s.Classes().ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Year 4 Blue", list[0].Name)
	require.True(t, list[1].TeacherID.IsZero(), "unassigned class keeps a zero teacher id")

	_, err = s.Classes().GetClass(ctx, idx.New())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAnnouncements(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	class := idx.New()
	author := idx.New()
	when := time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)

	a := domain.Announcement{
		Title:      "Sports day moved",
		Body:       "Now on Friday.",
		ClassID:    class,
		AuthorID:   author,
		AuthorName: "Dana Field",
		CreatedAt:  when,
	}
	key, err := s.Announcements().AddAnnouncement(ctx, a)
	require.NoError(t, err)

	got, err := s.Announcements().GetAnnouncement(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "Sports day moved", got.Title)
	require.Equal(t, class, got.ClassID)
	require.WithinDuration(t, when, got.CreatedAt, 0)

	// Global announcement: zero class id survives the round trip.
	key2, err := s.Announcements().AddAnnouncement(ctx, domain.Announcement{Title: "Assembly", CreatedAt: when.Add(time.Hour)})
	require.NoError(t, err)

	got, err = s.Announcements().GetAnnouncement(ctx, key2)
	require.NoError(t, err)
	require.True(t, got.Global())

	list, err := s.Announcements().ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Sports day moved", list[0].Title)
}

func testWatch(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	studentsSub, err := s.Watch(ctx, domain.CollectionStudents)
	require.NoError(t, err)
	t.Cleanup(studentsSub.Cancel)

	classesSub, err := s.Watch(ctx, domain.CollectionClasses)
	require.NoError(t, err)
	t.Cleanup(classesSub.Cancel)

	_, err = s.Students().AddStudent(ctx, domain.StudentRecord{Name: "Milo Trent", Username: "mtrent", Password: "x"})
	require.NoError(t, err)

	requireTick(t, studentsSub)
	requireQuiet(t, classesSub)

	_, err = s.Classes().AddClass(ctx, domain.Class{Name: "Year 4 Blue"})
	require.NoError(t, err)
	requireTick(t, classesSub)

	annSub, err := s.Watch(ctx, domain.CollectionAnnouncements)
	require.NoError(t, err)

	_, err = s.Announcements().AddAnnouncement(ctx, domain.Announcement{Title: "Assembly", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	requireTick(t, annSub)

	annSub.Cancel()
	_, err = s.Announcements().AddAnnouncement(ctx, domain.Announcement{Title: "Second", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	requireQuiet(t, classesSub)
	requireQuiet(t, studentsSub)
}

func testLifecycle(t *testing.T, open Factory) {
	ctx := context.Background()
	s := open(t)

	require.NoError(t, s.Ping(ctx))

	sub, err := s.Watch(ctx, domain.CollectionStudents)
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)

	require.NoError(t, s.Close())

	// The open subscription terminates with the store.
	select {
	case _, ok := <-sub.C:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription survived store close")
	}

	_, err = s.Watch(ctx, domain.CollectionStudents)
	require.Error(t, err)

	require.Error(t, s.Ping(ctx))
}

func requireTick(t *testing.T, sub *store.Subscription) {
	t.Helper()
	select {
	case _, ok := <-sub.C:
		require.True(t, ok, "subscription closed while expecting a tick")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change tick")
	}
}

func requireQuiet(t *testing.T, sub *store.Subscription) {
	t.Helper()
	select {
	case <-sub.C:
		t.Fatal("tick for a collection that did not change")
	case <-time.After(100 * time.Millisecond):
	}
}
