package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/pkg/httpx"
	"github.com/campuskit/homeroom/pkg/jwtx"
	"github.com/campuskit/homeroom/pkg/slogx"

	_ "github.com/campuskit/homeroom/api/school" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	Sessions *service.SessionService
	Views    *service.ViewService
	Roster   *service.RosterService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerViews()
	r.registerRoster()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Homeroom Companion API
//	@version		0.1.0
//	@description	Loopback API of the homeroom daemon. The dashboard logs in once per
//	@description	workstation, holds the returned bearer token, and reads its role-scoped
//	@description	slice of the shared school data from the view endpoints.
//
//	@contact.name				CampusKit Team
//	@contact.url				https://github.com/campuskit/homeroom
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:7707
//	@BasePath					/
//
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Sessions: r.Sessions}

	// POST /session - strict rate limit by IP (credential probing target)
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /session - public status probe so the dashboard can render the
	// login screen before it holds a token. Never includes the token.
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// DELETE /session - public on purpose. Logout is idempotent and must
	// succeed even when the dashboard lost its token, so there is nothing
	// for a bearer check to protect.
	r.Mux.Handle("DELETE /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// PATCH /session/user - authenticated profile merge
	r.Mux.Handle("PATCH /v1/session/user",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateUser),
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// POST /session/password - students only, strict limit (guessing target)
	r.Mux.Handle("POST /v1/session/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RequireRole("student"),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerViews() {
	h := &ViewsHandler{Views: r.Views}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/classes", secured(h.HandleClasses))
	r.Mux.Handle("GET /v1/students", secured(h.HandleStudents))
	r.Mux.Handle("GET /v1/announcements", secured(h.HandleAnnouncements))

	// GET /stream - long-lived SSE feed of view snapshots
	stream := &StreamHandler{Views: r.Views}
	r.Mux.Handle("GET /v1/stream",
		httpx.Chain(stream,
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRoster() {
	h := &RosterHandler{Roster: r.Roster, Store: r.store}

	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RequireRole("admin"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}

	// Teacher listing bypasses the view scope, so it stays admin only.
	r.Mux.Handle("GET /v1/teachers", adminOnly(h.HandleListTeachers))

	r.Mux.Handle("POST /v1/teachers", adminOnly(h.HandleCreateTeacher))
	r.Mux.Handle("POST /v1/classes", adminOnly(h.HandleCreateClass))
	r.Mux.Handle("POST /v1/students", adminOnly(h.HandleCreateStudent))

	// POST /announcements - staff roles; the service enforces class scope
	r.Mux.Handle("POST /v1/announcements",
		httpx.Chain(http.HandlerFunc(h.HandleCreateAnnouncement),
			httpx.AuthnMiddleware(r.verifier, r.Sessions.LiveInstance),
			httpx.RequireRole("admin", "teacher", "supervisor"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
