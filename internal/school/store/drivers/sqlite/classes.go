package sqlite

import (
	"context"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
)

type classesRepo struct {
	s *Store
}

func (r classesRepo) ListClasses(ctx context.Context) ([]domain.Class, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT id, name, teacher_id FROM classes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r classesRepo) GetClass(ctx context.Context, key idx.ID) (domain.Class, error) {
	row := r.s.db.QueryRowContext(ctx,
		`SELECT id, name, teacher_id FROM classes WHERE id = ?`, key.String())

	c, err := scanClass(row)
	if err != nil {
		return domain.Class{}, mapNotFound(err)
	}
	return c, nil
}

func (r classesRepo) AddClass(ctx context.Context, c domain.Class) (idx.ID, error) {
	if c.Key.IsZero() {
		c.Key = idx.New()
	}

	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO classes (id, name, teacher_id) VALUES (?, ?, ?)`,
		c.Key.String(), c.Name, mapOptionalID(c.TeacherID))
	if err != nil {
		return idx.Zero, err
	}

	r.s.hub.Notify(domain.CollectionClasses)
	return c.Key, nil
}

func scanClass(row rowScanner) (domain.Class, error) {
	var c domain.Class
	var id, teacherID string
	if err := row.Scan(&id, &c.Name, &teacherID); err != nil {
		return domain.Class{}, err
	}

	key, err := idx.Parse(id)
	if err != nil {
		return domain.Class{}, err
	}
	c.Key = key

	c.TeacherID, err = parseOptionalID(teacherID)
	if err != nil {
		return domain.Class{}, err
	}
	return c, nil
}
