package httpx

import (
	"net/http"
	"strings"
)

// RequireRole lets the request through when the authenticated session's role
// is one of those listed. Run it after AuthnMiddleware.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := roleFromCtx(r.Context())
			if _, ok := want[role]; ok {
				next.ServeHTTP(w, r)
				return
			}

			writeRoleError(w, allowed...)
		})
	}
}

func writeRoleError(w http.ResponseWriter, allowed ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_role", roles="`+strings.Join(allowed, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_role"))
}
