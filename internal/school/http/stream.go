package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/slogx"
)

// keepaliveInterval paces SSE comment lines so writes to a vanished
// dashboard fail within a bounded time even when the views are quiet.
const keepaliveInterval = 30 * time.Second

// StreamHandler pushes the filtered view state over Server-Sent Events.
// One frame carries the complete visible state, so the dashboard replaces
// rather than merges and a dropped frame costs nothing once a newer one
// arrives.
type StreamHandler struct {
	Views *service.ViewService
}

// ServeHTTP streams view frames until the client disconnects.
//
//	@Summary		Stream view changes
//	@Description	Server-Sent Events feed. Emits one frame with the full filtered state immediately, then another whenever the shared records or the session change. Frames carry a sequence number; render only frames newer than the last one shown.
//	@Tags			Views
//	@Security		BearerAuth
//	@Produce		text/event-stream
//	@Success		200	{object}	dashsdk.ViewsFrame	"Stream of view frames"
//	@Failure		401	{object}	dashsdk.APIError	"Invalid or missing token"
//	@Failure		503	{object}	dashsdk.APIError	"Daemon is shutting down"
//	@Router			/v1/stream [get].
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	sub, err := h.Views.Watch(ctx)
	if err != nil {
		dashsdk.ErrUnavailable.WriteError(w)
		return
	}
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// First frame straight away so the dashboard renders without waiting
	// for a change.
	if err := h.writeFrame(w, flusher); err != nil {
		return
	}

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-sub.C:
			if !open {
				// View service stopped, daemon is shutting down.
				return
			}
			if err := h.writeFrame(w, flusher); err != nil {
				log.Debug("stream write failed, closing", "err", err)
				return
			}
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *StreamHandler) writeFrame(w http.ResponseWriter, flusher http.Flusher) error {
	frame := sdkViews(h.Views.Snapshot())

	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
