package http

import (
	"net/http"

	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
)

// ViewsHandler serves the role-scoped read models. Each handler reads the
// same snapshot the stream endpoint pushes, so a poll and a stream frame
// taken at the same seq agree.
type ViewsHandler struct {
	Views *service.ViewService
}

// HandleClasses lists the classes visible to the session.
//
//	@Summary		List classes
//	@Description	Admins see every class, teachers the ones they teach, supervisors their assigned classes, students their own class.
//	@Tags			Views
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dashsdk.ClassListResponse	"Visible classes"
//	@Failure		401	{object}	dashsdk.APIError			"Invalid or missing token"
//	@Router			/v1/classes [get].
func (h *ViewsHandler) HandleClasses(w http.ResponseWriter, r *http.Request) {
	v := h.Views.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, dashsdk.ClassListResponse{
		Classes: sdkClasses(v.Classes),
	})
}

// HandleStudents lists the students visible to the session.
//
//	@Summary		List students
//	@Description	Follows class visibility: staff see the students of their visible classes, students see only themselves.
//	@Tags			Views
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dashsdk.StudentListResponse	"Visible students"
//	@Failure		401	{object}	dashsdk.APIError			"Invalid or missing token"
//	@Router			/v1/students [get].
func (h *ViewsHandler) HandleStudents(w http.ResponseWriter, r *http.Request) {
	v := h.Views.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, dashsdk.StudentListResponse{
		Students: sdkStudents(v.Students),
	})
}

// HandleAnnouncements lists the announcements visible to the session,
// newest first.
//
//	@Summary		List announcements
//	@Description	Global announcements plus the ones targeting a visible class, ordered newest first.
//	@Tags			Views
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dashsdk.AnnouncementListResponse	"Visible announcements"
//	@Failure		401	{object}	dashsdk.APIError					"Invalid or missing token"
//	@Router			/v1/announcements [get].
func (h *ViewsHandler) HandleAnnouncements(w http.ResponseWriter, r *http.Request) {
	v := h.Views.Snapshot()
	httpx.WriteJSON(w, http.StatusOK, dashsdk.AnnouncementListResponse{
		Announcements: sdkAnnouncements(v.Announcements),
	})
}
