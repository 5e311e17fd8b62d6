package school_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/campuskit/homeroom/pkg/dashsdk"
	"github.com/campuskit/homeroom/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit shrinks the strict profile to a handful of requests
// and hammers the login endpoint until the limiter answers instead of the
// handler. The profile is swapped back afterwards; nothing in this package
// runs in parallel.
func TestLoginRateLimit(t *testing.T) {
	old := httpx.StrictLimit
	httpx.StrictLimit = httpx.RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Minute,
		Burst:             3,
	}
	t.Cleanup(func() { httpx.StrictLimit = old })

	d := startDaemon(t, t.TempDir())
	defer d.stop()

	for i := 0; i < 3; i++ {
		_, err := d.Client.Login(t.Context(), "nobody", "wrong-anyway")
		requireAPIError(t, err, dashsdk.ErrorCodeInvalidCredentials)
	}

	t.Log("burst spent, the next attempt should be limited")
	_, err := d.Client.Login(t.Context(), adminUsername, adminPassword)
	apiErr := requireAPIError(t, err, "rate_limit_exceeded")
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)

	// Other profiles are untouched; health stays reachable.
	health, err := d.Client.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}
