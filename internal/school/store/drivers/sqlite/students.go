package sqlite

import (
	"context"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
)

type studentsRepo struct {
	s *Store
}

const studentColumns = `id, name, username, password, class_id, password_changed`

func (r studentsRepo) ListStudents(ctx context.Context) ([]domain.StudentRecord, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StudentRecord
	for rows.Next() {
		rec, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r studentsRepo) GetStudent(ctx context.Context, key idx.ID) (domain.StudentRecord, error) {
	row := r.s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, key.String())

	rec, err := scanStudent(row)
	if err != nil {
		return domain.StudentRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r studentsRepo) AddStudent(ctx context.Context, rec domain.StudentRecord) (idx.ID, error) {
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}

	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO students (id, name, username, password, class_id, password_changed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Key.String(), rec.Name, rec.Username, rec.Password,
		mapOptionalID(rec.ClassID), rec.PasswordChanged)
	if err != nil {
		return idx.Zero, err
	}

	r.s.hub.Notify(domain.CollectionStudents)
	return rec.Key, nil
}

func (r studentsRepo) UpdateStudent(ctx context.Context, rec domain.StudentRecord) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE students
		SET name = ?, username = ?, password = ?, class_id = ?, password_changed = ?
		WHERE id = ?`,
		rec.Name, rec.Username, rec.Password, mapOptionalID(rec.ClassID),
		rec.PasswordChanged, rec.Key.String())
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	r.s.hub.Notify(domain.CollectionStudents)
	return nil
}

func scanStudent(row rowScanner) (domain.StudentRecord, error) {
	var rec domain.StudentRecord
	var id, classID string
	if err := row.Scan(&id, &rec.Name, &rec.Username, &rec.Password, &classID, &rec.PasswordChanged); err != nil {
		return domain.StudentRecord{}, err
	}

	key, err := idx.Parse(id)
	if err != nil {
		return domain.StudentRecord{}, err
	}
	rec.Key = key

	rec.ClassID, err = parseOptionalID(classID)
	if err != nil {
		return domain.StudentRecord{}, err
	}
	return rec, nil
}
