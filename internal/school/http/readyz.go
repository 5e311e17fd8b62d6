package http

import (
	"net/http"
	"time"

	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning daemon health status and the reachability of the shared record store
//	@Description	Includes uptime, version, and per-dependency checks
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dashsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	dashsdk.HealthResponse	"status, uptime, version, checks - daemon not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dashsdk.HealthChecks{
			Store: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check shared store connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Store = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := dashsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
