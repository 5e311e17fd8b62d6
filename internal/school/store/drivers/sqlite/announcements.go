package sqlite

import (
	"context"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
)

type announcementsRepo struct {
	s *Store
}

const announcementColumns = `id, title, body, class_id, author_id, author_name, created_at`

func (r announcementsRepo) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r announcementsRepo) GetAnnouncement(ctx context.Context, key idx.ID) (domain.Announcement, error) {
	row := r.s.db.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, key.String())

	a, err := scanAnnouncement(row)
	if err != nil {
		return domain.Announcement{}, mapNotFound(err)
	}
	return a, nil
}

func (r announcementsRepo) AddAnnouncement(ctx context.Context, a domain.Announcement) (idx.ID, error) {
	if a.Key.IsZero() {
		a.Key = idx.New()
	}

	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO announcements (id, title, body, class_id, author_id, author_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Key.String(), a.Title, a.Body, mapOptionalID(a.ClassID),
		mapOptionalID(a.AuthorID), a.AuthorName, formatTime(a.CreatedAt))
	if err != nil {
		return idx.Zero, err
	}

	r.s.hub.Notify(domain.CollectionAnnouncements)
	return a.Key, nil
}

func scanAnnouncement(row rowScanner) (domain.Announcement, error) {
	var a domain.Announcement
	var id, classID, authorID, createdAt string
	if err := row.Scan(&id, &a.Title, &a.Body, &classID, &authorID, &a.AuthorName, &createdAt); err != nil {
		return domain.Announcement{}, err
	}

	key, err := idx.Parse(id)
	if err != nil {
		return domain.Announcement{}, err
	}
	a.Key = key

	if a.ClassID, err = parseOptionalID(classID); err != nil {
		return domain.Announcement{}, err
	}
	if a.AuthorID, err = parseOptionalID(authorID); err != nil {
		return domain.Announcement{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Announcement{}, err
	}
	return a, nil
}
