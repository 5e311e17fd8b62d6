package domain

import "github.com/campuskit/homeroom/pkg/idx"

// SessionPatch is a partial update to the live session. Nil fields are left
// untouched; fields that do not apply to the session's role are ignored.
type SessionPatch struct {
	DisplayName      *string
	ClassID          *idx.ID
	ClassName        *string
	PasswordChanged  *bool
	AssignedClassIDs []idx.ID
}

// IsZero reports whether the patch changes nothing.
func (p SessionPatch) IsZero() bool {
	return p.DisplayName == nil &&
		p.ClassID == nil &&
		p.ClassName == nil &&
		p.PasswordChanged == nil &&
		p.AssignedClassIDs == nil
}

// Apply merges the patch into s and returns the updated session. The input
// is never mutated; variants keep their concrete type.
func (p SessionPatch) Apply(s Session) Session {
	switch v := s.(type) {
	case AdminSession:
		v.Identity = p.applyIdentity(v.Identity)
		return v
	case TeacherSession:
		v.Identity = p.applyIdentity(v.Identity)
		return v
	case SupervisorSession:
		v.Identity = p.applyIdentity(v.Identity)
		if p.AssignedClassIDs != nil {
			v.AssignedClassIDs = DedupeIDs(p.AssignedClassIDs)
		}
		return v
	case StudentSession:
		v.Identity = p.applyIdentity(v.Identity)
		if p.ClassID != nil {
			v.ClassID = *p.ClassID
		}
		if p.ClassName != nil {
			v.ClassName = *p.ClassName
		}
		if p.PasswordChanged != nil {
			v.PasswordChanged = *p.PasswordChanged
		}
		return v
	default:
		return s
	}
}

func (p SessionPatch) applyIdentity(id Identity) Identity {
	if p.DisplayName != nil {
		id.DisplayName = *p.DisplayName
	}
	return id
}
