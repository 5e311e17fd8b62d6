package domain

import "github.com/campuskit/homeroom/pkg/idx"

// Credential records are owned by the remote store and compared in clear
// text by exact match. That comparison contract is inherited from the data
// the store already holds; this service never hashes what it does not own.

// AdminRecord is the school administrator account. There is exactly one and
// it declares its own id rather than living under a generated key.
type AdminRecord struct {
	ID       idx.ID `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TeacherRecord is a teaching staff account keyed by the store. A record
// flagged as supervisor carries the class ids it oversees; the flag decides
// which session variant a login produces.
type TeacherRecord struct {
	Key              idx.ID   `json:"-"`
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	Password         string   `json:"password"`
	Subject          string   `json:"subject,omitempty"`
	IsSupervisor     bool     `json:"isSupervisor,omitempty"`
	AssignedClassIDs []idx.ID `json:"assignedClassIds,omitempty"`
}

// StudentRecord is a student account keyed by the store. The record doubles
// as the roster entry for its class.
type StudentRecord struct {
	Key             idx.ID `json:"-"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ClassID         idx.ID `json:"classId,omitempty"`
	PasswordChanged bool   `json:"passwordChanged,omitempty"`
}

// Entity strips the credential fields off a teacher record for surfaces
// that list staff.
func (r TeacherRecord) Entity() Teacher {
	return Teacher{
		Key:              r.Key,
		Name:             r.Name,
		Username:         r.Username,
		Subject:          r.Subject,
		IsSupervisor:     r.IsSupervisor,
		AssignedClassIDs: DedupeIDs(r.AssignedClassIDs),
	}
}

// Entity strips the credential fields off a student record for the scoped
// student listings.
func (r StudentRecord) Entity() Student {
	return Student{
		Key:      r.Key,
		Name:     r.Name,
		Username: r.Username,
		ClassID:  r.ClassID,
	}
}
