package sqlite

import (
	"context"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
)

type adminRepo struct {
	s *Store
}

func (r adminRepo) GetAdmin(ctx context.Context) (domain.AdminRecord, error) {
	row := r.s.db.QueryRowContext(ctx,
		`SELECT id, username, password, name FROM admin WHERE slot = 0`)

	var rec domain.AdminRecord
	var id string
	if err := row.Scan(&id, &rec.Username, &rec.Password, &rec.Name); err != nil {
		return domain.AdminRecord{}, mapNotFound(err)
	}

	parsed, err := idx.Parse(id)
	if err != nil {
		return domain.AdminRecord{}, err
	}
	rec.ID = parsed
	return rec, nil
}

func (r adminRepo) PutAdmin(ctx context.Context, rec domain.AdminRecord) error {
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO admin (slot, id, username, password, name)
		VALUES (0, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			id = excluded.id,
			username = excluded.username,
			password = excluded.password,
			name = excluded.name`,
		rec.ID.String(), rec.Username, rec.Password, rec.Name)
	return err
}
