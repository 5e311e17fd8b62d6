package http

import (
	"net/http"
	"time"

	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic daemon health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the daemon is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dashsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := dashsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
