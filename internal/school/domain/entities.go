package domain

import (
	"time"

	"github.com/campuskit/homeroom/pkg/idx"
)

// Class is a class group. TeacherID points at the teaching staff record
// responsible for it.
type Class struct {
	Key       idx.ID `json:"-"`
	Name      string `json:"name"`
	TeacherID idx.ID `json:"teacherId,omitempty"`
}

// Student is the roster view of a student, with credentials stripped.
type Student struct {
	Key      idx.ID `json:"-"`
	Name     string `json:"name"`
	Username string `json:"username"`
	ClassID  idx.ID `json:"classId,omitempty"`
}

// Teacher is the staff-directory view of a teacher record.
type Teacher struct {
	Key              idx.ID   `json:"-"`
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	Subject          string   `json:"subject,omitempty"`
	IsSupervisor     bool     `json:"isSupervisor,omitempty"`
	AssignedClassIDs []idx.ID `json:"assignedClassIds,omitempty"`
}

// Announcement is a notice shown on dashboards. An empty ClassID means the
// announcement is global and every role sees it.
type Announcement struct {
	Key        idx.ID    `json:"-"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	ClassID    idx.ID    `json:"classId,omitempty"`
	AuthorID   idx.ID    `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Global reports whether the announcement targets every dashboard rather
// than a single class.
func (a Announcement) Global() bool { return a.ClassID.IsZero() }
