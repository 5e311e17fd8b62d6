package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuskit/homeroom/internal/school/domain"
	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
	"github.com/campuskit/homeroom/pkg/idx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

type SessionHandler struct {
	Sessions *service.SessionService
}

// HandleLogin authenticates the workstation and establishes the session.
//
//	@Summary		Log in
//	@Description	Resolves the credentials against the shared records (admin first, then teachers, then students) and replaces any previous session. The returned token authenticates every later call and stays valid until logout.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dashsdk.LoginRequest	true	"Credentials, compared exactly as sent"
//	@Success		200		{object}	dashsdk.LoginResponse	"Resolved session and bearer token"
//	@Failure		400		{object}	dashsdk.APIError		"Malformed request body"
//	@Failure		401		{object}	dashsdk.APIError		"No record matches the credentials"
//	@Failure		503		{object}	dashsdk.APIError		"Shared records unreachable"
//	@Router			/v1/session [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	// Credentials pass through untouched. Trimming or case folding here
	// would let a login succeed with input that differs from the record.
	sess, token, err := h.Sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			dashsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrUnavailable):
			dashsdk.ErrUnavailable.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			dashsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.LoginResponse{
		User:  sdkUser(sess),
		Token: token,
	})
}

// HandleStatus reports the session phase without requiring a token.
//
//	@Summary		Session status
//	@Description	Returns the current phase and, when authenticated, the resolved user. The token itself is never included, so the endpoint is safe to poll before login.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	dashsdk.SessionStatusResponse	"Current phase and user"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sess, phase := h.Sessions.Current()

	resp := dashsdk.SessionStatusResponse{Phase: string(phase)}
	if sess != nil {
		user := sdkUser(sess)
		resp.User = &user
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogout clears the session and the durable slot.
//
//	@Summary		Log out
//	@Description	Ends the session if one exists. Safe to repeat; logging out of an already logged-out daemon is a no-op.
//	@Tags			Session
//	@Success		204	"Logged out (or already was)"
//	@Router			/v1/session [delete].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateUser merges a partial update into the session user.
//
//	@Summary		Update the session user
//	@Description	Merges the provided fields into the current session and re-persists it. Omitted fields keep their value; assigned_class_ids replaces the whole set. The bearer token keeps working afterwards.
//	@Tags			Session
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	dashsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		204		"Applied"
//	@Failure		400		{object}	dashsdk.APIError	"Malformed body or unparseable class id"
//	@Failure		401		{object}	dashsdk.APIError	"Invalid or missing token"
//	@Router			/v1/session/user [patch].
func (h *SessionHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dashsdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	patch := domain.SessionPatch{
		DisplayName:     req.DisplayName,
		ClassName:       req.ClassName,
		PasswordChanged: req.PasswordChanged,
	}
	if req.ClassID != nil {
		id, err := idx.Parse(*req.ClassID)
		if err != nil {
			dashsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		patch.ClassID = &id
	}
	if req.AssignedClassIDs != nil {
		ids := make([]idx.ID, len(req.AssignedClassIDs))
		for i, raw := range req.AssignedClassIDs {
			id, err := idx.Parse(raw)
			if err != nil {
				dashsdk.ErrInvalidRequest.WriteError(w)
				return
			}
			ids[i] = id
		}
		patch.AssignedClassIDs = ids
	}

	h.Sessions.UpdateUser(r.Context(), patch)

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangePassword rotates the student's own password.
//
//	@Summary		Change password
//	@Description	Verifies the current password and stores the new one. Student sessions only; the session and its token stay valid afterwards.
//	@Tags			Session
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	dashsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204		"Password rotated"
//	@Failure		400		{object}	dashsdk.APIError	"Malformed request body"
//	@Failure		401		{object}	dashsdk.APIError	"Current password does not match"
//	@Failure		403		{object}	dashsdk.APIError	"Session is not a student"
//	@Failure		503		{object}	dashsdk.APIError	"Shared records unreachable"
//	@Router			/v1/session/password [post].
func (h *SessionHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dashsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.Sessions.ChangePassword(ctx, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrNotStudent):
			dashsdk.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			dashsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrUnavailable):
			dashsdk.ErrUnavailable.WriteError(w)
		default:
			log.Error("password rotation failed", "err", err)
			dashsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
