package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	hub *store.Hub
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: with this driver every pooled connection to ":memory:"
	// is a separate database, and the daemon's write load is tiny anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		hub: store.NewHub(),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error {
	s.hub.Close()
	return s.db.Close()
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Watch delivers change ticks for c. SQLite has no change feed, so writes
// through this store notify an in-process hub; changes made by another
// process to the same file are not observed.
func (s *Store) Watch(ctx context.Context, c domain.Collection) (*store.Subscription, error) {
	return s.hub.Subscribe(ctx, c)
}

func (s *Store) Admin() store.Admin                 { return adminRepo{s} }
func (s *Store) Teachers() store.Teachers           { return teachersRepo{s} }
func (s *Store) Students() store.Students           { return studentsRepo{s} }
func (s *Store) Classes() store.Classes             { return classesRepo{s} }
func (s *Store) Announcements() store.Announcements { return announcementsRepo{s} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// rowScanner lets the same mapper serve sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func mapOptionalID(id idx.ID) string {
	if id.IsZero() {
		return ""
	}
	return id.String()
}

func parseOptionalID(raw string) (idx.ID, error) {
	if raw == "" {
		return idx.Zero, nil
	}
	return idx.Parse(raw)
}

// joinIDs flattens a key set into the space-delimited storage form.
func joinIDs(ids []idx.ID) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " ")
}

func splitIDs(raw string) []idx.ID {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	out := make([]idx.ID, 0, len(fields))
	for _, f := range fields {
		id, err := idx.Parse(f)
		if err != nil {
			// Skip anything unreadable rather than fail the whole row.
			continue
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}
