package dashsdk

import "time"

// ============================================================================
// Error Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the error payload every failing endpoint returns. This is
// used internally when parsing HTTP error responses; client code should work
// with the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Session Types
// ============================================================================

// SessionUser describes the authenticated account. Role decides which of the
// optional fields are present.
type SessionUser struct {
	// ID is the account's record key
	ID string `json:"id"`

	// Role is "admin", "teacher", "supervisor" or "student"
	Role string `json:"role"`

	// Username the account logged in with
	Username string `json:"username"`

	// DisplayName shown in the dashboard header
	DisplayName string `json:"display_name"`

	// ClassID and ClassName of the student's own class (student role only)
	ClassID   string `json:"class_id,omitempty"`
	ClassName string `json:"class_name,omitempty"`

	// PasswordChanged reports whether the student rotated the handed-out
	// initial password (student role only)
	PasswordChanged bool `json:"password_changed,omitempty"`

	// AssignedClassIDs lists the overseen classes (supervisor role only)
	AssignedClassIDs []string `json:"assigned_class_ids,omitempty"`
}

// LoginRequest carries the credentials for POST /v1/session. Values are
// matched byte-for-byte by the daemon; nothing is trimmed or rejected for
// being empty.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	// User is the resolved account
	User SessionUser `json:"user"`

	// Token is the bearer proof for every authenticated call. It stays
	// valid until logout or a fresh login replaces the session.
	Token string `json:"token"`
}

// SessionStatusResponse is returned by GET /v1/session.
type SessionStatusResponse struct {
	// Phase is "unauthenticated", "authenticating" or "authenticated"
	Phase string `json:"phase"`

	// User is present while authenticated
	User *SessionUser `json:"user,omitempty"`
}

// UpdateUserRequest is the partial-update payload for PATCH /v1/session/user.
// Nil fields keep their current value. AssignedClassIDs replaces the whole
// set when non-nil; an empty slice clears it.
type UpdateUserRequest struct {
	DisplayName      *string  `json:"display_name,omitempty"`
	ClassID          *string  `json:"class_id,omitempty"`
	ClassName        *string  `json:"class_name,omitempty"`
	PasswordChanged  *bool    `json:"password_changed,omitempty"`
	AssignedClassIDs []string `json:"assigned_class_ids,omitempty"`
}

// ChangePasswordRequest rotates the student's own password.
type ChangePasswordRequest struct {
	// CurrentPassword must match the stored one exactly
	CurrentPassword string `json:"current_password"`

	// NewPassword becomes the stored password as-is
	NewPassword string `json:"new_password"`
}

// ============================================================================
// Roster Types
// ============================================================================

// Class is a class group.
type Class struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// TeacherID points at the teaching staff member responsible
	TeacherID string `json:"teacher_id,omitempty"`
}

// Student is a roster entry. Credentials never appear here.
type Student struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	ClassID  string `json:"class_id,omitempty"`
}

// Teacher is a staff directory entry. Credentials never appear here.
type Teacher struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Username         string   `json:"username"`
	Subject          string   `json:"subject,omitempty"`
	IsSupervisor     bool     `json:"is_supervisor,omitempty"`
	AssignedClassIDs []string `json:"assigned_class_ids,omitempty"`
}

// Announcement is a dashboard notice. An empty ClassID marks it global.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	ClassID    string    `json:"class_id,omitempty"`
	AuthorID   string    `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClassListResponse is returned by GET /v1/classes.
type ClassListResponse struct {
	Classes []Class `json:"classes"`
}

// StudentListResponse is returned by GET /v1/students.
type StudentListResponse struct {
	Students []Student `json:"students"`
}

// AnnouncementListResponse is returned by GET /v1/announcements, newest
// first.
type AnnouncementListResponse struct {
	Announcements []Announcement `json:"announcements"`
}

// TeacherListResponse is returned by GET /v1/teachers.
type TeacherListResponse struct {
	Teachers []Teacher `json:"teachers"`
}

// CreateTeacherRequest appends a teaching staff account. Password may be
// empty; the daemon generates an initial one and echoes it back.
type CreateTeacherRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Subject  string `json:"subject,omitempty"`
}

// CreateTeacherResponse carries the created record and the stored password,
// generated or supplied. This is the only time the daemon hands it out.
type CreateTeacherResponse struct {
	Teacher  Teacher `json:"teacher"`
	Password string  `json:"password"`
}

// CreateClassRequest appends a class. SupervisorID optionally assigns the
// class to that teacher's oversight set and flags the record supervisor.
type CreateClassRequest struct {
	Name         string `json:"name"`
	TeacherID    string `json:"teacher_id,omitempty"`
	SupervisorID string `json:"supervisor_id,omitempty"`
}

// CreateClassResponse carries the created class.
type CreateClassResponse struct {
	Class Class `json:"class"`
}

// CreateStudentRequest appends a student account. Password may be empty; the
// daemon generates an initial one and echoes it back.
type CreateStudentRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	ClassID  string `json:"class_id,omitempty"`
}

// CreateStudentResponse carries the created record and the stored password.
type CreateStudentResponse struct {
	Student  Student `json:"student"`
	Password string  `json:"password"`
}

// CreateAnnouncementRequest posts an announcement. Empty ClassID means
// global, which only the admin session may post.
type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	ClassID string `json:"class_id,omitempty"`
}

// CreateAnnouncementResponse carries the stored announcement with its
// server-assigned creation time.
type CreateAnnouncementResponse struct {
	Announcement Announcement `json:"announcement"`
}

// ============================================================================
// Stream Types
// ============================================================================

// ViewsFrame is one event on GET /v1/stream: the complete filtered state the
// session may see. Frames with an older Seq than one already rendered can be
// dropped.
type ViewsFrame struct {
	Seq           uint64         `json:"seq"`
	Classes       []Class        `json:"classes"`
	Students      []Student      `json:"students"`
	Announcements []Announcement `json:"announcements"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthChecks reports per-dependency health in readiness responses.
type HealthChecks struct {
	Store string `json:"store"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
