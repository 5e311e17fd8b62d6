package store

import (
	"context"
	"errors"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrClosed   = errors.New("store: closed")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite,
// redis) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
//
// Records are keyed by ULID, so listing in ascending key order doubles as
// insertion order. Writes are single-record appends or replacements; there
// is no multi-record transaction because nothing in the data model needs
// one.
type Store interface {
	Admin() Admin
	Teachers() Teachers
	Students() Students
	Classes() Classes
	Announcements() Announcements

	// Watch registers for change notifications on one collection. A tick on
	// the subscription means the collection changed at least once since the
	// last receive; consumers re-List to pick up the new snapshot. Ticks are
	// coalesced, never queued.
	Watch(ctx context.Context, c domain.Collection) (*Subscription, error)

	ApplyMigrations() error

	// Close releases the driver's resources. Open subscriptions are
	// terminated.
	Close() error

	// Ping verifies the backing store is still reachable.
	Ping(ctx context.Context) error
}

// Admin holds the single administrator record. It declares its own id, so
// there is no keyed collection behind it.
type Admin interface {
	// GetAdmin returns the administrator record, or ErrNotFound before the
	// first PutAdmin.
	GetAdmin(ctx context.Context) (domain.AdminRecord, error)

	// PutAdmin writes or replaces the administrator record.
	PutAdmin(ctx context.Context, rec domain.AdminRecord) error
}

type Teachers interface {
	// ListTeachers returns every teacher record in ascending key order.
	ListTeachers(ctx context.Context) ([]domain.TeacherRecord, error)

	// GetTeacher returns one record by key.
	GetTeacher(ctx context.Context, key idx.ID) (domain.TeacherRecord, error)

	// AddTeacher appends a record and returns its key. A zero rec.Key means
	// the driver assigns a fresh one; a set key is honored as-is.
	AddTeacher(ctx context.Context, rec domain.TeacherRecord) (idx.ID, error)

	// UpdateTeacher replaces the record stored under rec.Key.
	UpdateTeacher(ctx context.Context, rec domain.TeacherRecord) error
}

type Students interface {
	// ListStudents returns every student record in ascending key order.
	ListStudents(ctx context.Context) ([]domain.StudentRecord, error)

	// GetStudent returns one record by key.
	GetStudent(ctx context.Context, key idx.ID) (domain.StudentRecord, error)

	// AddStudent appends a record and returns its key. Key assignment works
	// like AddTeacher.
	AddStudent(ctx context.Context, rec domain.StudentRecord) (idx.ID, error)

	// UpdateStudent replaces the record stored under rec.Key.
	UpdateStudent(ctx context.Context, rec domain.StudentRecord) error
}

type Classes interface {
	// ListClasses returns every class in ascending key order.
	ListClasses(ctx context.Context) ([]domain.Class, error)

	// GetClass returns one class by key.
	GetClass(ctx context.Context, key idx.ID) (domain.Class, error)

	// AddClass appends a class and returns its key.
	AddClass(ctx context.Context, c domain.Class) (idx.ID, error)
}

type Announcements interface {
	// ListAnnouncements returns every announcement in ascending key order.
	// Display ordering is the caller's concern.
	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)

	// GetAnnouncement returns one announcement by key.
	GetAnnouncement(ctx context.Context, key idx.ID) (domain.Announcement, error)

	// AddAnnouncement appends an announcement and returns its key.
	AddAnnouncement(ctx context.Context, a domain.Announcement) (idx.ID, error)
}
