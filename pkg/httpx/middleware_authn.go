package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/campuskit/homeroom/pkg/jwtx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

// SessionProbe reports the instance id of the live session, if any. The
// middleware uses it to reject tokens from logins that have since been
// replaced or logged out.
type SessionProbe func() (instanceID string, ok bool)

// AuthnMiddleware authenticates the bearer token and checks it still points
// at the live session. The daemon holds exactly one session, so proof is a
// signature check plus an instance id comparison, no token store needed.
func AuthnMiddleware(v jwtx.Verifier, live SessionProbe) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("bearer verify failed", "err", err)
				return
			}

			instance, ok := live()
			if !ok || claims.ID != instance {
				writeBearerError(w, "token does not match the active session")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
