package dashsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success returns a session carrying the token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/session", r.URL.Path)

			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "marie", req.Username)
			require.Equal(t, "secret", req.Password)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(LoginResponse{
				User:  SessionUser{ID: "T1", Role: "teacher", Username: "marie", DisplayName: "Marie"},
				Token: "sealed-token",
			})
		}))
		defer srv.Close()

		session, err := NewClient(srv.URL).Login(ctx, "marie", "secret")
		require.NoError(t, err)
		require.Equal(t, "sealed-token", session.Token())
		require.Equal(t, "teacher", session.User().Role)
	})

	t.Run("error responses come back typed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ErrInvalidCredentials.WriteError(w)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Login(ctx, "marie", "wrong")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
		require.Equal(t, "invalid username or password", apiErr.Description)
	})

	t.Run("store outage maps to the unavailable code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ErrUnavailable.WriteError(w)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Login(ctx, "marie", "secret")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeUnavailable, apiErr.Code)
		require.Equal(t, "login failed, try again", apiErr.Description)
	})
}

func TestAuthenticatedRequests(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("session requests carry the bearer token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer kept-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ClassListResponse{Classes: []Class{{ID: "C1", Name: "7a"}}})
		}))
		defer srv.Close()

		session := NewClient(srv.URL).ResumeSession("kept-token", SessionUser{Role: "teacher"})
		classes, err := session.Classes(ctx)
		require.NoError(t, err)
		require.Len(t, classes, 1)
		require.Equal(t, "7a", classes[0].Name)
	})

	t.Run("bodyless middleware rejections map by status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		session := NewClient(srv.URL).ResumeSession("stale-token", SessionUser{})
		_, err := session.Classes(ctx)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeInvalidToken, apiErr.Code)
	})

	t.Run("logout expects no content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		session := NewClient(srv.URL).ResumeSession("kept-token", SessionUser{})
		require.NoError(t, session.Logout(ctx))
	})
}

func TestStream(t *testing.T) {
	t.Parallel()

	t.Run("delivers decoded frames in order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/stream", r.URL.Path)
			w.Header().Set("Content-Type", "text/event-stream")

			flusher, ok := w.(http.Flusher)
			require.True(t, ok)
			for _, frame := range []ViewsFrame{
				{Seq: 1, Classes: []Class{{ID: "C1", Name: "7a"}}},
				{Seq: 2},
			} {
				payload, err := json.Marshal(frame)
				require.NoError(t, err)
				_, _ = w.Write([]byte("data: "))
				_, _ = w.Write(payload)
				_, _ = w.Write([]byte("\n\n"))
				flusher.Flush()
			}
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session := NewClient(srv.URL).ResumeSession("kept-token", SessionUser{})
		frames, errs := session.Stream(ctx)

		first := <-frames
		require.Equal(t, uint64(1), first.Seq)
		require.Len(t, first.Classes, 1)

		second := <-frames
		require.Equal(t, uint64(2), second.Seq)

		// Server closed the stream; both channels drain cleanly.
		for range frames {
		}
		require.NoError(t, <-errs)
	})

	t.Run("comment keep-alives are skipped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte(": ping\n\n"))
			_, _ = w.Write([]byte("data: {\"seq\":7}\n\n"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session := NewClient(srv.URL).ResumeSession("kept-token", SessionUser{})
		frames, errs := session.Stream(ctx)

		frame := <-frames
		require.Equal(t, uint64(7), frame.Seq)
		for range frames {
		}
		require.NoError(t, <-errs)
	})

	t.Run("rejected stream surfaces the typed error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ErrInvalidToken.WriteError(w)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		session := NewClient(srv.URL).ResumeSession("stale-token", SessionUser{})
		frames, errs := session.Stream(ctx)

		for range frames {
		}
		err := <-errs

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeInvalidToken, apiErr.Code)
	})
}

func TestErrorParsing(t *testing.T) {
	t.Parallel()

	t.Run("api errors print code and description", func(t *testing.T) {
		err := &APIError{StatusCode: 403, Code: ErrorCodeOutOfScope, Description: "target class is outside the current scope"}
		require.Equal(t, "out_of_scope: target class is outside the current scope", err.Error())
	})

	t.Run("errors.As works through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), ErrForbidden)

		var apiErr *APIError
		require.ErrorAs(t, wrapped, &apiErr)
		require.Equal(t, ErrorCodeForbidden, apiErr.Code)
	})
}
