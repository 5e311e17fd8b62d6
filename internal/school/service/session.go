package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/slot"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/cryptox"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/campuskit/homeroom/pkg/jwtx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers every no-match outcome. Whether the
	// username was unknown or the password wrong is never distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnavailable covers the store being unreachable or returning
	// something unreadable. Worth retrying; ErrInvalidCredentials is not.
	ErrUnavailable = errors.New("login failed, try again")

	// ErrNotStudent rejects password rotation from non-student sessions.
	ErrNotStudent = errors.New("only student sessions can rotate their password")
)

// Phase is the coarse state the presentation layer renders from.
type Phase string

const (
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticating  Phase = "authenticating"
	PhaseAuthenticated   Phase = "authenticated"
)

// SessionService owns the one process-wide session: login, restore from the
// durable slot, logout, and partial updates. Credential checks probe the
// admin record, then teachers, then students, and the first exact match
// wins, so a username/password pair colliding across collections always
// resolves to the higher-priority role.
type SessionService struct {
	Store  store.Store
	Slot   slot.Slot
	Sealer *jwtx.HS256
	Issuer string

	mu       sync.RWMutex
	current  domain.Session
	instance string
	loading  bool

	onChange []func(domain.Session)
}

// Login resolves the credentials to a session, seals it into the slot and
// makes it current. It returns the sealed token for the caller to present
// as bearer proof.
//
// Inputs are matched byte-for-byte: no trimming, no emptiness checks. An
// empty password matches a record whose stored password is empty.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, string, error) {
	l := slogx.FromContext(ctx)

	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.resolve(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("login rejected", slog.String("user_fp", cryptox.Fingerprint(username)))
		}
		return nil, "", err
	}

	instance := jwtx.NewInstanceID()
	token, err := s.seal(sess, instance)
	if err != nil {
		l.Error("failed to seal session", slog.Any("error", err))
		return nil, "", ErrUnavailable
	}

	if err := s.Slot.Set(token); err != nil {
		// Best effort: the in-memory session still stands, it just will
		// not survive a restart.
		l.Warn("session slot write failed", slog.Any("error", err))
	}

	s.setSession(sess, instance)
	l.Info("login",
		slog.String("role", sess.Role().String()),
		slog.String("user_fp", cryptox.Fingerprint(username)),
	)
	return sess, token, nil
}

// Restore rebuilds the session from the durable slot. Anything unreadable,
// tampered with or sealed by another machine counts as absence: the daemon
// simply starts unauthenticated.
func (s *SessionService) Restore(ctx context.Context) (domain.Session, bool) {
	l := slogx.FromContext(ctx)

	raw, err := s.Slot.Get()
	if errors.Is(err, slot.ErrEmpty) {
		return nil, false
	}
	if err != nil {
		l.Warn("session slot unreadable", slog.Any("error", err))
		return nil, false
	}

	claims, err := s.Sealer.Verify(raw)
	if err != nil {
		l.Warn("discarding unusable session slot", slog.Any("error", err))
		return nil, false
	}

	sess, err := sessionFromClaims(claims)
	if err != nil {
		l.Warn("discarding unusable session slot", slog.Any("error", err))
		return nil, false
	}

	s.setSession(sess, claims.ID)
	l.Info("session restored", slog.String("role", sess.Role().String()))
	return sess, true
}

// Logout drops the session and clears the slot. Calling it without an
// active session changes nothing, so it is safe to hit twice.
func (s *SessionService) Logout(ctx context.Context) {
	l := slogx.FromContext(ctx)

	if err := s.Slot.Remove(); err != nil {
		// Swallowed: the in-memory logout must not be blocked by the slot.
		l.Warn("session slot remove failed", slog.Any("error", err))
	}

	s.mu.RLock()
	had := s.current != nil
	s.mu.RUnlock()

	s.setSession(nil, "")
	if had {
		l.Info("logout")
	}
}

// UpdateUser merges the patch into the current session and re-persists the
// result under the same session instance. Without an active session it is
// a silent no-op; callers only reach it from authenticated surfaces.
func (s *SessionService) UpdateUser(ctx context.Context, patch domain.SessionPatch) {
	l := slogx.FromContext(ctx)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	updated := patch.Apply(s.current)
	s.current = updated
	instance := s.instance
	s.mu.Unlock()

	token, err := s.seal(updated, instance)
	if err != nil {
		l.Warn("failed to re-seal updated session", slog.Any("error", err))
	} else if err := s.Slot.Set(token); err != nil {
		l.Warn("session slot write failed", slog.Any("error", err))
	}

	s.notify(updated)
}

// ChangePassword rotates the student's own credential record. The current
// password must match, under the same exact-comparison contract as login.
// On success the record and the live session both carry passwordChanged.
func (s *SessionService) ChangePassword(ctx context.Context, current, next string) error {
	l := slogx.FromContext(ctx)

	s.mu.RLock()
	sess := s.current
	s.mu.RUnlock()

	student, ok := sess.(domain.StudentSession)
	if !ok {
		return ErrNotStudent
	}

	rec, err := s.Store.Students().GetStudent(ctx, student.ID)
	if err != nil {
		l.Error("failed to load student record for password change", slog.Any("error", err))
		return ErrUnavailable
	}
	if rec.Password != current {
		l.Info("password change rejected", slog.String("user_fp", cryptox.Fingerprint(rec.Username)))
		return ErrInvalidCredentials
	}

	rec.Password = next
	rec.PasswordChanged = true
	if err := s.Store.Students().UpdateStudent(ctx, rec); err != nil {
		l.Error("failed to persist password change", slog.Any("error", err))
		return ErrUnavailable
	}

	changed := true
	s.UpdateUser(ctx, domain.SessionPatch{PasswordChanged: &changed})
	l.Info("student password rotated")
	return nil
}

// Current returns the session, if any, and the phase the presentation
// layer should render.
func (s *SessionService) Current() (domain.Session, Phase) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.current != nil:
		return s.current, PhaseAuthenticated
	case s.loading:
		return nil, PhaseAuthenticating
	default:
		return nil, PhaseUnauthenticated
	}
}

// LiveInstance exposes the current session instance id for bearer checks.
func (s *SessionService) LiveInstance() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instance, s.instance != ""
}

// OnChange registers fn to run after every session transition, including
// logout (fn receives nil). Register during wiring, before traffic.
func (s *SessionService) OnChange(fn func(domain.Session)) {
	s.onChange = append(s.onChange, fn)
}

func (s *SessionService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *SessionService) setSession(sess domain.Session, instance string) {
	s.mu.Lock()
	s.current = sess
	s.instance = instance
	s.mu.Unlock()

	s.notify(sess)
}

func (s *SessionService) notify(sess domain.Session) {
	for _, fn := range s.onChange {
		fn(sess)
	}
}

// resolve probes the credential collections in priority order: the admin
// record first, then teachers in enumeration order, then students.
func (s *SessionService) resolve(ctx context.Context, username, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	admin, err := s.Store.Admin().GetAdmin(ctx)
	switch {
	case err == nil:
		if admin.Username == username && admin.Password == password {
			return domain.NewAdminSession(admin), nil
		}
	case !errors.Is(err, store.ErrNotFound):
		l.Error("admin record unavailable", slog.Any("error", err))
		return nil, ErrUnavailable
	}

	teachers, err := s.Store.Teachers().ListTeachers(ctx)
	if err != nil {
		l.Error("teacher collection unavailable", slog.Any("error", err))
		return nil, ErrUnavailable
	}
	for _, rec := range teachers {
		if rec.Username == username && rec.Password == password {
			return domain.NewStaffSession(rec), nil
		}
	}

	students, err := s.Store.Students().ListStudents(ctx)
	if err != nil {
		l.Error("student collection unavailable", slog.Any("error", err))
		return nil, ErrUnavailable
	}
	for _, rec := range students {
		if rec.Username == username && rec.Password == password {
			className, err := s.classNameFor(ctx, rec.ClassID)
			if err != nil {
				return nil, err
			}
			return domain.NewStudentSession(rec, className), nil
		}
	}

	return nil, ErrInvalidCredentials
}

// classNameFor resolves the display name of a student's class. A dangling
// class id yields an empty name rather than an error.
func (s *SessionService) classNameFor(ctx context.Context, classID idx.ID) (string, error) {
	if classID.IsZero() {
		return "", nil
	}

	class, err := s.Store.Classes().GetClass(ctx, classID)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		slogx.FromContext(ctx).Error("class lookup failed", slog.Any("error", err))
		return "", ErrUnavailable
	}
	return class.Name, nil
}

// seal freezes the session into a signed token carrying the given instance
// id. UpdateUser re-seals under the original instance so bearer tokens from
// the login stay valid.
func (s *SessionService) seal(sess domain.Session, instance string) (string, error) {
	acct := sess.Account()

	claims := jwtx.NewSessionClaims(acct.ID.String(), s.Issuer, time.Now())
	claims.ID = instance
	claims.Role = sess.Role().String()
	claims.Username = acct.Username
	claims.DisplayName = acct.DisplayName

	switch v := sess.(type) {
	case domain.SupervisorSession:
		claims.AssignedClassIDs = idsToStrings(v.AssignedClassIDs)
	case domain.StudentSession:
		claims.ClassID = v.ClassID.String()
		claims.ClassName = v.ClassName
		claims.PasswordChanged = v.PasswordChanged
	}

	return s.Sealer.Sign(claims)
}

// sessionFromClaims is the inverse of seal. Claims that fail to map back,
// like an unknown role or an unparseable id, mean the slot content is not
// usable.
func sessionFromClaims(c jwtx.Claims) (domain.Session, error) {
	id, err := idx.Parse(c.Subject)
	if err != nil {
		return nil, err
	}

	identity := domain.Identity{
		ID:          id,
		Username:    c.Username,
		DisplayName: c.DisplayName,
	}

	switch domain.Role(c.Role) {
	case domain.RoleAdmin:
		return domain.AdminSession{Identity: identity}, nil
	case domain.RoleTeacher:
		return domain.TeacherSession{Identity: identity}, nil
	case domain.RoleSupervisor:
		ids, err := stringsToIDs(c.AssignedClassIDs)
		if err != nil {
			return nil, err
		}
		return domain.SupervisorSession{Identity: identity, AssignedClassIDs: domain.DedupeIDs(ids)}, nil
	case domain.RoleStudent:
		classID := idx.Zero
		if c.ClassID != "" {
			if classID, err = idx.Parse(c.ClassID); err != nil {
				return nil, err
			}
		}
		return domain.StudentSession{
			Identity:        identity,
			ClassID:         classID,
			ClassName:       c.ClassName,
			PasswordChanged: c.PasswordChanged,
		}, nil
	default:
		return nil, errors.New("unknown session role")
	}
}

func idsToStrings(ids []idx.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToIDs(raw []string) ([]idx.ID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]idx.ID, len(raw))
	for i, r := range raw {
		id, err := idx.Parse(r)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
