package dashsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Session is an authenticated handle on the daemon's one dashboard session.
// It is created by Client.Login or Client.ResumeSession and stays usable
// until logout, or until a fresh login elsewhere replaces the session.
type Session struct {
	client *Client
	token  string
	user   SessionUser
}

// Token returns the bearer token. Persist it to resume after a dashboard or
// daemon restart.
func (s *Session) Token() string { return s.token }

// User returns the account as resolved at login time. For the live state,
// including later partial updates, ask Client.SessionStatus.
func (s *Session) User() SessionUser { return s.user }

// Logout ends the daemon's session and clears its durable slot. Logging out
// twice is harmless.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/session", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdateUser merges the given fields into the session's account. Nil fields
// stay untouched.
func (s *Session) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode update request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/session/user", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ChangePassword rotates the student's own password. The current password
// must match exactly, under the same comparison contract as login.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	payload, err := json.Marshal(ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return fmt.Errorf("failed to encode password request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/session/password", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Classes lists the classes visible to this session.
func (s *Session) Classes(ctx context.Context) ([]Class, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/classes", nil, nil)
	if err != nil {
		return nil, err
	}

	var list ClassListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Classes, nil
}

// Students lists the students visible to this session.
func (s *Session) Students(ctx context.Context) ([]Student, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/students", nil, nil)
	if err != nil {
		return nil, err
	}

	var list StudentListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Students, nil
}

// Announcements lists the announcements visible to this session, newest
// first.
func (s *Session) Announcements(ctx context.Context) ([]Announcement, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/announcements", nil, nil)
	if err != nil {
		return nil, err
	}

	var list AnnouncementListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Announcements, nil
}

// Teachers lists the staff directory. Admin sessions only.
func (s *Session) Teachers(ctx context.Context) ([]Teacher, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/teachers", nil, nil)
	if err != nil {
		return nil, err
	}

	var list TeacherListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Teachers, nil
}

// CreateTeacher appends a teaching staff account. Admin sessions only. The
// response carries the stored password; it is not retrievable later.
func (s *Session) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (CreateTeacherResponse, error) {
	var created CreateTeacherResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return created, fmt.Errorf("failed to encode create request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/teachers", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return created, err
	}

	err = decodeJSON(resp, &created, http.StatusCreated)
	return created, err
}

// CreateClass appends a class. Admin sessions only.
func (s *Session) CreateClass(ctx context.Context, req CreateClassRequest) (Class, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Class{}, fmt.Errorf("failed to encode create request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/classes", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return Class{}, err
	}

	var created CreateClassResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return Class{}, err
	}
	return created.Class, nil
}

// CreateStudent appends a student account. Admin sessions only.
func (s *Session) CreateStudent(ctx context.Context, req CreateStudentRequest) (CreateStudentResponse, error) {
	var created CreateStudentResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return created, fmt.Errorf("failed to encode create request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/students", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return created, err
	}

	err = decodeJSON(resp, &created, http.StatusCreated)
	return created, err
}

// CreateAnnouncement posts an announcement inside the session's scope.
// Admin, teacher and supervisor sessions only; global posts are the admin's
// alone.
func (s *Session) CreateAnnouncement(ctx context.Context, req CreateAnnouncementRequest) (Announcement, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Announcement{}, fmt.Errorf("failed to encode create request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/announcements", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return Announcement{}, err
	}

	var created CreateAnnouncementResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return Announcement{}, err
	}
	return created.Announcement, nil
}
