// Package scope computes the subset of a collection snapshot a session is
// allowed to see. Every function is pure: the inputs are never mutated and
// the result is a fresh slice, so callers can hold onto it across snapshots.
//
// A nil session sees nothing.
package scope

import (
	"sort"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/pkg/idx"
)

// Classes filters a classes snapshot, preserving snapshot order.
func Classes(s domain.Session, snapshot []domain.Class) []domain.Class {
	switch v := s.(type) {
	case domain.AdminSession:
		return append([]domain.Class(nil), snapshot...)
	case domain.TeacherSession:
		out := make([]domain.Class, 0, len(snapshot))
		for _, c := range snapshot {
			if c.TeacherID == v.ID {
				out = append(out, c)
			}
		}
		return out
	case domain.SupervisorSession:
		assigned := idSet(v.AssignedClassIDs)
		out := make([]domain.Class, 0, len(assigned))
		for _, c := range snapshot {
			if _, ok := assigned[c.Key]; ok {
				out = append(out, c)
			}
		}
		return out
	default:
		// Students and unauthenticated callers have no class listing.
		return nil
	}
}

// Students filters a students snapshot, preserving snapshot order. The
// classes snapshot is needed because a teacher's visible students are
// defined through the classes they teach.
func Students(s domain.Session, classes []domain.Class, snapshot []domain.Student) []domain.Student {
	var visible map[idx.ID]struct{}

	switch v := s.(type) {
	case domain.AdminSession:
		return append([]domain.Student(nil), snapshot...)
	case domain.TeacherSession:
		visible = taughtClasses(v.ID, classes)
	case domain.SupervisorSession:
		visible = idSet(v.AssignedClassIDs)
	default:
		return nil
	}

	out := make([]domain.Student, 0, len(snapshot))
	for _, st := range snapshot {
		if _, ok := visible[st.ClassID]; ok {
			out = append(out, st)
		}
	}
	return out
}

// Announcements filters an announcements snapshot and orders the result
// newest first. Ties on CreatedAt keep their snapshot order. Global
// announcements are visible to every role.
func Announcements(s domain.Session, classes []domain.Class, snapshot []domain.Announcement) []domain.Announcement {
	var allowed func(domain.Announcement) bool

	switch v := s.(type) {
	case domain.AdminSession:
		allowed = func(domain.Announcement) bool { return true }
	case domain.TeacherSession:
		taught := taughtClasses(v.ID, classes)
		allowed = func(a domain.Announcement) bool {
			_, ok := taught[a.ClassID]
			return a.Global() || ok
		}
	case domain.SupervisorSession:
		assigned := idSet(v.AssignedClassIDs)
		allowed = func(a domain.Announcement) bool {
			_, ok := assigned[a.ClassID]
			return a.Global() || ok
		}
	case domain.StudentSession:
		allowed = func(a domain.Announcement) bool {
			return a.Global() || a.ClassID == v.ClassID
		}
	default:
		return nil
	}

	out := make([]domain.Announcement, 0, len(snapshot))
	for _, a := range snapshot {
		if allowed(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// taughtClasses collects the ids of classes assigned to the given teacher.
func taughtClasses(teacherID idx.ID, classes []domain.Class) map[idx.ID]struct{} {
	set := make(map[idx.ID]struct{})
	for _, c := range classes {
		if c.TeacherID == teacherID {
			set[c.Key] = struct{}{}
		}
	}
	return set
}

func idSet(ids []idx.ID) map[idx.ID]struct{} {
	set := make(map[idx.ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
