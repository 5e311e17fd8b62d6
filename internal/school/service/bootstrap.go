package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/cryptox"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

// BootstrapService seeds the admin credential record on first run. The
// admin account is configured rather than registered; until a record is
// seeded no login can resolve to the admin role.
type BootstrapService struct {
	Store store.Store

	AdminUsername string
	AdminPassword string
	AdminName     string
}

// Seed writes the configured admin record when none exists yet. An
// existing record always wins, so a redeploy never rotates credentials.
func (s *BootstrapService) Seed(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	_, err := s.Store.Admin().GetAdmin(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("read admin record: %w", err)
	}

	if s.AdminUsername == "" || s.AdminPassword == "" {
		l.Warn("admin credentials not configured, skipping seed")
		return nil
	}

	name := s.AdminName
	if name == "" {
		name = "Administrator"
	}

	rec := domain.AdminRecord{
		ID:       idx.New(),
		Username: s.AdminUsername,
		Password: s.AdminPassword,
		Name:     name,
	}
	if err := s.Store.Admin().PutAdmin(ctx, rec); err != nil {
		return fmt.Errorf("seed admin record: %w", err)
	}

	l.Info("admin record seeded",
		slog.String("admin_id", rec.ID.String()),
		slog.String("user_fp", cryptox.Fingerprint(s.AdminUsername)),
	)
	return nil
}
