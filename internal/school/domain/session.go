package domain

import "github.com/campuskit/homeroom/pkg/idx"

// Role decides which visibility predicate applies to a session.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleSupervisor Role = "supervisor"
	RoleStudent    Role = "student"
)

func (r Role) String() string { return string(r) }

// Identity is the part of a session every role shares.
type Identity struct {
	ID          idx.ID
	Username    string
	DisplayName string
}

// Account returns the shared identity. Promoted onto every variant through
// embedding so the Session interface is satisfied for free.
func (i Identity) Account() Identity { return i }

func (Identity) isSession() {}

// Session is the authenticated identity, as a sealed sum over the four
// roles. Each variant carries only the fields its role actually has, so
// consumers switch on the concrete type instead of probing optional fields.
//
// A session lives from a successful login until logout or the slot is lost;
// nothing expires it.
type Session interface {
	Role() Role
	Account() Identity
	isSession()
}

// AdminSession sees everything and owns the roster.
type AdminSession struct {
	Identity
}

func (AdminSession) Role() Role { return RoleAdmin }

// TeacherSession sees the classes taught by this teacher and what hangs off
// them.
type TeacherSession struct {
	Identity
}

func (TeacherSession) Role() Role { return RoleTeacher }

// SupervisorSession sees the explicitly assigned classes. AssignedClassIDs
// is a set: construction and every patch de-duplicate it.
type SupervisorSession struct {
	Identity
	AssignedClassIDs []idx.ID
}

func (SupervisorSession) Role() Role { return RoleSupervisor }

// StudentSession sees announcements only: global ones plus those for its
// own class.
type StudentSession struct {
	Identity
	ClassID         idx.ID
	ClassName       string
	PasswordChanged bool
}

func (StudentSession) Role() Role { return RoleStudent }

// NewAdminSession builds the session for the admin record.
func NewAdminSession(rec AdminRecord) AdminSession {
	return AdminSession{Identity: Identity{
		ID:          rec.ID,
		Username:    rec.Username,
		DisplayName: rec.Name,
	}}
}

// NewStaffSession builds the session for a teacher-collection record: the
// supervisor flag on the record picks the variant.
func NewStaffSession(rec TeacherRecord) Session {
	id := Identity{
		ID:          rec.Key,
		Username:    rec.Username,
		DisplayName: rec.Name,
	}

	if rec.IsSupervisor {
		return SupervisorSession{
			Identity:         id,
			AssignedClassIDs: DedupeIDs(rec.AssignedClassIDs),
		}
	}
	return TeacherSession{Identity: id}
}

// NewStudentSession builds the session for a student record. The class name
// is resolved by the caller because it lives on the class record, not the
// student one.
func NewStudentSession(rec StudentRecord, className string) StudentSession {
	return StudentSession{
		Identity: Identity{
			ID:          rec.Key,
			Username:    rec.Username,
			DisplayName: rec.Name,
		},
		ClassID:         rec.ClassID,
		ClassName:       className,
		PasswordChanged: rec.PasswordChanged,
	}
}

// DedupeIDs returns ids with duplicates removed, first occurrence kept.
// Always returns a fresh slice so callers can hold onto it safely.
func DedupeIDs(ids []idx.ID) []idx.ID {
	out := make([]idx.ID, 0, len(ids))
	seen := make(map[idx.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
