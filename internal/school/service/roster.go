package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/cryptox"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

// ErrOutOfScope rejects an announcement aimed at a class the posting
// session cannot see. Global announcements count as out of scope for
// everyone but the admin.
var ErrOutOfScope = errors.New("target class is outside the current scope")

// generatedPasswordLength sizes handed-out initial passwords.
const generatedPasswordLength = 10

// RosterService is the append surface behind the admin forms: new
// teachers, classes, students and announcements. Records are appended to
// the shared store; the live views pick them up through the change feed.
type RosterService struct {
	Store    store.Store
	Sessions *SessionService
	Views    *ViewService
}

type NewTeacher struct {
	Name     string
	Username string
	Password string // generated when empty
	Subject  string
}

type NewClass struct {
	Name         string
	TeacherID    idx.ID // teaching assignment, optional
	SupervisorID idx.ID // oversight assignment, optional
}

type NewStudent struct {
	Name     string
	Username string
	Password string // generated when empty
	ClassID  idx.ID
}

type NewAnnouncement struct {
	Title   string
	Body    string
	ClassID idx.ID // zero means global
}

// AddTeacher appends a teacher record. The returned password is the one
// actually stored, so the caller can hand it out when it was generated.
func (r *RosterService) AddTeacher(ctx context.Context, in NewTeacher) (domain.Teacher, string, error) {
	password, err := r.ensurePassword(in.Password)
	if err != nil {
		return domain.Teacher{}, "", err
	}

	rec := domain.TeacherRecord{
		Name:     in.Name,
		Username: in.Username,
		Password: password,
		Subject:  in.Subject,
	}
	key, err := r.Store.Teachers().AddTeacher(ctx, rec)
	if err != nil {
		return domain.Teacher{}, "", fmt.Errorf("add teacher: %w", err)
	}
	rec.Key = key

	slogx.FromContext(ctx).Info("teacher added",
		slog.String("key", key.String()),
		slog.String("user_fp", cryptox.Fingerprint(in.Username)),
	)
	return rec.Entity(), password, nil
}

// AddClass appends a class. When a supervising teacher is named, the class
// key is added to that teacher's assignment set, duplicates removed, and
// the record is flagged supervisor; a matching live supervisor session is
// patched in place so its scope follows immediately.
func (r *RosterService) AddClass(ctx context.Context, in NewClass) (domain.Class, error) {
	l := slogx.FromContext(ctx)

	class := domain.Class{Name: in.Name, TeacherID: in.TeacherID}
	key, err := r.Store.Classes().AddClass(ctx, class)
	if err != nil {
		return domain.Class{}, fmt.Errorf("add class: %w", err)
	}
	class.Key = key

	if !in.SupervisorID.IsZero() {
		if err := r.assignSupervisor(ctx, in.SupervisorID, key); err != nil {
			// The class exists either way; report the half-applied part.
			return class, err
		}
	}

	l.Info("class added", slog.String("key", key.String()))
	return class, nil
}

func (r *RosterService) assignSupervisor(ctx context.Context, teacherID, classKey idx.ID) error {
	rec, err := r.Store.Teachers().GetTeacher(ctx, teacherID)
	if err != nil {
		return fmt.Errorf("assign supervisor: %w", err)
	}

	rec.IsSupervisor = true
	rec.AssignedClassIDs = domain.DedupeIDs(append(rec.AssignedClassIDs, classKey))
	if err := r.Store.Teachers().UpdateTeacher(ctx, rec); err != nil {
		return fmt.Errorf("assign supervisor: %w", err)
	}

	// A teacher logged in as supervisor sees the new class without
	// re-authenticating. A plain teacher session picks the promotion up on
	// the next login; its variant cannot change mid-session.
	if current, _ := r.Sessions.Current(); current != nil {
		if sup, ok := current.(domain.SupervisorSession); ok && sup.ID == teacherID {
			r.Sessions.UpdateUser(ctx, domain.SessionPatch{AssignedClassIDs: rec.AssignedClassIDs})
		}
	}

	slogx.FromContext(ctx).Info("supervisor assigned",
		slog.String("teacher", teacherID.String()),
		slog.String("class", classKey.String()),
	)
	return nil
}

// AddStudent appends a student record with passwordChanged unset. The
// returned password is the stored one, generated when none was supplied.
// The class reference is taken as-is; nothing checks it resolves.
func (r *RosterService) AddStudent(ctx context.Context, in NewStudent) (domain.Student, string, error) {
	password, err := r.ensurePassword(in.Password)
	if err != nil {
		return domain.Student{}, "", err
	}

	rec := domain.StudentRecord{
		Name:     in.Name,
		Username: in.Username,
		Password: password,
		ClassID:  in.ClassID,
	}
	key, err := r.Store.Students().AddStudent(ctx, rec)
	if err != nil {
		return domain.Student{}, "", fmt.Errorf("add student: %w", err)
	}
	rec.Key = key

	slogx.FromContext(ctx).Info("student added",
		slog.String("key", key.String()),
		slog.String("user_fp", cryptox.Fingerprint(in.Username)),
	)
	return rec.Entity(), password, nil
}

// AddAnnouncement appends an announcement authored by the current session.
// Class-targeted posts must aim inside the poster's visible scope; global
// posts are the admin's alone. CreatedAt is assigned here, not by callers.
func (r *RosterService) AddAnnouncement(ctx context.Context, in NewAnnouncement) (domain.Announcement, error) {
	sess, _ := r.Sessions.Current()
	if sess == nil {
		return domain.Announcement{}, ErrOutOfScope
	}

	if err := r.checkAnnouncementScope(sess, in.ClassID); err != nil {
		return domain.Announcement{}, err
	}

	acct := sess.Account()
	a := domain.Announcement{
		Title:      in.Title,
		Body:       in.Body,
		ClassID:    in.ClassID,
		AuthorID:   acct.ID,
		AuthorName: acct.DisplayName,
		CreatedAt:  time.Now().UTC(),
	}
	key, err := r.Store.Announcements().AddAnnouncement(ctx, a)
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("add announcement: %w", err)
	}
	a.Key = key

	slogx.FromContext(ctx).Info("announcement added",
		slog.String("key", key.String()),
		slog.String("role", sess.Role().String()),
	)
	return a, nil
}

func (r *RosterService) checkAnnouncementScope(sess domain.Session, classID idx.ID) error {
	switch sess.Role() {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTeacher, domain.RoleSupervisor:
		if classID.IsZero() {
			return ErrOutOfScope
		}
		for _, c := range r.Views.Snapshot().Classes {
			if c.Key == classID {
				return nil
			}
		}
		return ErrOutOfScope
	default:
		return ErrOutOfScope
	}
}

func (r *RosterService) ensurePassword(supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	return cryptox.GeneratePassword(generatedPasswordLength)
}
