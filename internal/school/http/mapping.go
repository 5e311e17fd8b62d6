package http

import (
	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/idx"
)

// Domain record keys never serialize with the records themselves, so every
// wire type carries an explicit id mapped here.

func sdkUser(sess domain.Session) dashsdk.SessionUser {
	acct := sess.Account()
	user := dashsdk.SessionUser{
		ID:          acct.ID.String(),
		Role:        sess.Role().String(),
		Username:    acct.Username,
		DisplayName: acct.DisplayName,
	}

	switch v := sess.(type) {
	case domain.SupervisorSession:
		user.AssignedClassIDs = idStrings(v.AssignedClassIDs)
	case domain.StudentSession:
		user.ClassID = v.ClassID.String()
		user.ClassName = v.ClassName
		user.PasswordChanged = v.PasswordChanged
	}

	return user
}

func sdkClass(c domain.Class) dashsdk.Class {
	return dashsdk.Class{
		ID:        c.Key.String(),
		Name:      c.Name,
		TeacherID: c.TeacherID.String(),
	}
}

func sdkStudent(s domain.Student) dashsdk.Student {
	return dashsdk.Student{
		ID:       s.Key.String(),
		Name:     s.Name,
		Username: s.Username,
		ClassID:  s.ClassID.String(),
	}
}

func sdkTeacher(t domain.Teacher) dashsdk.Teacher {
	return dashsdk.Teacher{
		ID:               t.Key.String(),
		Name:             t.Name,
		Username:         t.Username,
		Subject:          t.Subject,
		IsSupervisor:     t.IsSupervisor,
		AssignedClassIDs: idStrings(t.AssignedClassIDs),
	}
}

func sdkAnnouncement(a domain.Announcement) dashsdk.Announcement {
	return dashsdk.Announcement{
		ID:         a.Key.String(),
		Title:      a.Title,
		Body:       a.Body,
		ClassID:    a.ClassID.String(),
		AuthorID:   a.AuthorID.String(),
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt,
	}
}

func sdkClasses(list []domain.Class) []dashsdk.Class {
	out := make([]dashsdk.Class, len(list))
	for i, c := range list {
		out[i] = sdkClass(c)
	}
	return out
}

func sdkStudents(list []domain.Student) []dashsdk.Student {
	out := make([]dashsdk.Student, len(list))
	for i, s := range list {
		out[i] = sdkStudent(s)
	}
	return out
}

func sdkTeachers(list []domain.Teacher) []dashsdk.Teacher {
	out := make([]dashsdk.Teacher, len(list))
	for i, t := range list {
		out[i] = sdkTeacher(t)
	}
	return out
}

func sdkAnnouncements(list []domain.Announcement) []dashsdk.Announcement {
	out := make([]dashsdk.Announcement, len(list))
	for i, a := range list {
		out[i] = sdkAnnouncement(a)
	}
	return out
}

func sdkViews(v service.Views) dashsdk.ViewsFrame {
	return dashsdk.ViewsFrame{
		Seq:           v.Seq,
		Classes:       sdkClasses(v.Classes),
		Students:      sdkStudents(v.Students),
		Announcements: sdkAnnouncements(v.Announcements),
	}
}

func idStrings(ids []idx.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
