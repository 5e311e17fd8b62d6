package sqlite

import (
	"context"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/idx"
)

type teachersRepo struct {
	s *Store
}

const teacherColumns = `id, name, username, password, subject, is_supervisor, assigned_class_ids`

func (r teachersRepo) ListTeachers(ctx context.Context) ([]domain.TeacherRecord, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+teacherColumns+` FROM teachers ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TeacherRecord
	for rows.Next() {
		rec, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r teachersRepo) GetTeacher(ctx context.Context, key idx.ID) (domain.TeacherRecord, error) {
	row := r.s.db.QueryRowContext(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = ?`, key.String())

	rec, err := scanTeacher(row)
	if err != nil {
		return domain.TeacherRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r teachersRepo) AddTeacher(ctx context.Context, rec domain.TeacherRecord) (idx.ID, error) {
	if rec.Key.IsZero() {
		rec.Key = idx.New()
	}

	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO teachers (id, name, username, password, subject, is_supervisor, assigned_class_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Key.String(), rec.Name, rec.Username, rec.Password, rec.Subject,
		rec.IsSupervisor, joinIDs(rec.AssignedClassIDs))
	if err != nil {
		return idx.Zero, err
	}
	return rec.Key, nil
}

func (r teachersRepo) UpdateTeacher(ctx context.Context, rec domain.TeacherRecord) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE teachers
		SET name = ?, username = ?, password = ?, subject = ?, is_supervisor = ?, assigned_class_ids = ?
		WHERE id = ?`,
		rec.Name, rec.Username, rec.Password, rec.Subject,
		rec.IsSupervisor, joinIDs(rec.AssignedClassIDs), rec.Key.String())
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
	return nil
}

func scanTeacher(row rowScanner) (domain.TeacherRecord, error) {
	var rec domain.TeacherRecord
	var id, assigned string
	if err := row.Scan(&id, &rec.Name, &rec.Username, &rec.Password, &rec.Subject, &rec.IsSupervisor, &assigned); err != nil {
		return domain.TeacherRecord{}, err
	}

	key, err := idx.Parse(id)
	if err != nil {
		return domain.TeacherRecord{}, err
	}
	rec.Key = key
	rec.AssignedClassIDs = splitIDs(assigned)
	return rec, nil
}
