package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

// errStoreUnavailable reports a shared-store failure outside the login path,
// where the mandated "login failed, try again" wording would mislead.
var errStoreUnavailable = dashsdk.NewAPIError(
	http.StatusServiceUnavailable,
	dashsdk.ErrorCodeUnavailable,
	"shared records unreachable",
)

// errSupervisorNotFound reports the one partial outcome AddClass has: the
// class was appended but the named supervisor does not exist.
var errSupervisorNotFound = dashsdk.NewAPIError(
	http.StatusNotFound,
	dashsdk.ErrorCodeNotFound,
	"supervisor teacher not found (the class itself was created)",
)

// RosterHandler covers the admin-side record management plus announcement
// posting for the staff roles. Create inputs are stored exactly as sent;
// only presence is validated here, matching the exact-string login contract.
type RosterHandler struct {
	Roster *service.RosterService
	Store  store.Store
}

// HandleListTeachers lists every teacher record.
//
//	@Summary		List teachers
//	@Description	Returns all teacher records without credentials. Teachers are not part of the scoped views, so the listing is admin only.
//	@Tags			Roster
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dashsdk.TeacherListResponse	"All teachers"
//	@Failure		401	{object}	dashsdk.APIError			"Invalid or missing token"
//	@Failure		403	{object}	dashsdk.APIError			"Session is not the admin"
//	@Failure		503	{object}	dashsdk.APIError			"Shared records unreachable"
//	@Router			/v1/teachers [get].
func (h *RosterHandler) HandleListTeachers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	records, err := h.Store.Teachers().ListTeachers(ctx)
	if err != nil {
		log.Warn("teacher listing failed", "err", err)
		errStoreUnavailable.WriteError(w)
		return
	}

	teachers := make([]domain.Teacher, len(records))
	for i, rec := range records {
		teachers[i] = rec.Entity()
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.TeacherListResponse{
		Teachers: sdkTeachers(teachers),
	})
}

// HandleCreateTeacher appends a teacher account.
//
//	@Summary		Create a teacher
//	@Description	Appends a teacher record. When no password is supplied the daemon generates one and returns it; this response is the only place it is ever shown.
//	@Tags			Roster
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.CreateTeacherRequest	true	"Teacher to create"
//	@Success		201		{object}	dashsdk.CreateTeacherResponse	"Created record and its password"
//	@Failure		400		{object}	dashsdk.APIError				"Missing name or username"
//	@Failure		401		{object}	dashsdk.APIError				"Invalid or missing token"
//	@Failure		403		{object}	dashsdk.APIError				"Session is not the admin"
//	@Failure		503		{object}	dashsdk.APIError				"Shared records unreachable"
//	@Router			/v1/teachers [post].
func (h *RosterHandler) HandleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.CreateTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" || req.Username == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	teacher, password, err := h.Roster.AddTeacher(ctx, service.NewTeacher{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Subject:  req.Subject,
	})
	if err != nil {
		log.Warn("teacher creation failed", "err", err)
		errStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dashsdk.CreateTeacherResponse{
		Teacher:  sdkTeacher(teacher),
		Password: password,
	})
}

// HandleCreateClass appends a class.
//
//	@Summary		Create a class
//	@Description	Appends a class. A supervisor_id additionally flags that teacher as supervisor and adds the class to their oversight set; if the teacher does not exist the class is still created and the response says so.
//	@Tags			Roster
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.CreateClassRequest	true	"Class to create"
//	@Success		201		{object}	dashsdk.CreateClassResponse	"Created class"
//	@Failure		400		{object}	dashsdk.APIError			"Missing name or unparseable id"
//	@Failure		401		{object}	dashsdk.APIError			"Invalid or missing token"
//	@Failure		403		{object}	dashsdk.APIError			"Session is not the admin"
//	@Failure		404		{object}	dashsdk.APIError			"Supervisor teacher not found"
//	@Failure		503		{object}	dashsdk.APIError			"Shared records unreachable"
//	@Router			/v1/classes [post].
func (h *RosterHandler) HandleCreateClass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.NewClass{Name: req.Name}
	if req.TeacherID != "" {
		id, err := idx.Parse(req.TeacherID)
		if err != nil {
			dashsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		in.TeacherID = id
	}
	if req.SupervisorID != "" {
		id, err := idx.Parse(req.SupervisorID)
		if err != nil {
			dashsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		in.SupervisorID = id
	}

	class, err := h.Roster.AddClass(ctx, in)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errSupervisorNotFound.WriteError(w)
			return
		}
		log.Warn("class creation failed", "err", err)
		errStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dashsdk.CreateClassResponse{
		Class: sdkClass(class),
	})
}

// HandleCreateStudent appends a student account.
//
//	@Summary		Create a student
//	@Description	Appends a student record with the password-changed flag unset. When no password is supplied the daemon generates one and returns it.
//	@Tags			Roster
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.CreateStudentRequest	true	"Student to create"
//	@Success		201		{object}	dashsdk.CreateStudentResponse	"Created record and its password"
//	@Failure		400		{object}	dashsdk.APIError				"Missing name or username, or unparseable class id"
//	@Failure		401		{object}	dashsdk.APIError				"Invalid or missing token"
//	@Failure		403		{object}	dashsdk.APIError				"Session is not the admin"
//	@Failure		503		{object}	dashsdk.APIError				"Shared records unreachable"
//	@Router			/v1/students [post].
func (h *RosterHandler) HandleCreateStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" || req.Username == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.NewStudent{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	}
	if req.ClassID != "" {
		id, err := idx.Parse(req.ClassID)
		if err != nil {
			dashsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		in.ClassID = id
	}

	student, password, err := h.Roster.AddStudent(ctx, in)
	if err != nil {
		log.Warn("student creation failed", "err", err)
		errStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dashsdk.CreateStudentResponse{
		Student:  sdkStudent(student),
		Password: password,
	})
}

// HandleCreateAnnouncement posts an announcement.
//
//	@Summary		Post an announcement
//	@Description	Appends an announcement authored by the current session. Teachers and supervisors may only target classes inside their own scope; an empty class_id posts globally and is reserved for the admin.
//	@Tags			Roster
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.CreateAnnouncementRequest	true	"Announcement to post"
//	@Success		201		{object}	dashsdk.CreateAnnouncementResponse	"Stored announcement"
//	@Failure		400		{object}	dashsdk.APIError					"Missing title or unparseable class id"
//	@Failure		401		{object}	dashsdk.APIError					"Invalid or missing token"
//	@Failure		403		{object}	dashsdk.APIError					"Target class outside the session's scope"
//	@Failure		503		{object}	dashsdk.APIError					"Shared records unreachable"
//	@Router			/v1/announcements [post].
func (h *RosterHandler) HandleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Title == "" {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	in := service.NewAnnouncement{Title: req.Title, Body: req.Body}
	if req.ClassID != "" {
		id, err := idx.Parse(req.ClassID)
		if err != nil {
			dashsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		in.ClassID = id
	}

	announcement, err := h.Roster.AddAnnouncement(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrOutOfScope) {
			dashsdk.ErrOutOfScope.WriteError(w)
			return
		}
		log.Warn("announcement posting failed", "err", err)
		errStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dashsdk.CreateAnnouncementResponse{
		Announcement: sdkAnnouncement(announcement),
	})
}
