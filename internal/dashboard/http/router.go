package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/pkg/httpx"
	"github.com/gautamkumarcode/youtube-video-management/pkg/jwtx"
	"github.com/gautamkumarcode/youtube-video-management/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	AuthService  *service.AuthService
	VideoService *service.VideoService
	NoteService  *service.NoteService
	EventService *service.EventService
	TokenStore   *service.TokenStore
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerVideos()
	r.registerNotes()
	r.registerEvents()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	authHandler := &AuthHandler{
		AuthService: r.AuthService,
		TokenStore:  r.TokenStore,
		Logger:      r.logger,
	}

	// Consent redirect is cheap; the callback burns provider quota and
	// mints sessions, so it gets the strict profile.
	r.Mux.Handle("GET /api/auth/google",
		httpx.Chain(http.HandlerFunc(authHandler.HandleLogin),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/google/callback",
		httpx.Chain(http.HandlerFunc(authHandler.HandleCallback),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(authHandler.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(authHandler.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/token-debug",
		httpx.Chain(http.HandlerFunc(authHandler.HandleTokenDebug),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVideos() {
	videoHandler := &VideoHandler{
		VideoService: r.VideoService,
		Events:       r.EventService,
	}

	authed := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
			EventMiddleware(r.EventService),
		)
	}

	r.Mux.Handle("GET /api/videos/{id}", authed(videoHandler.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/videos/{id}", authed(videoHandler.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/videos/{id}/comments", authed(videoHandler.HandleListComments, httpx.LenientLimit))
	r.Mux.Handle("POST /api/videos/{id}/comments", authed(videoHandler.HandleAddComment, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/comments/{id}/replies", authed(videoHandler.HandleReplyComment, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/comments/{id}", authed(videoHandler.HandleDeleteComment, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/videos/{id}/statistics/refresh", authed(videoHandler.HandleRefreshStatistics, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/videos/search", authed(videoHandler.HandleSearch, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/permissions/test", authed(videoHandler.HandleTestPermissions, httpx.ModerateLimit))
}

func (r *Router) registerNotes() {
	noteHandler := &NoteHandler{
		NoteService: r.NoteService,
		Events:      r.EventService,
	}

	authed := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
			EventMiddleware(r.EventService),
		)
	}

	r.Mux.Handle("POST /api/videos/{id}/notes", authed(noteHandler.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/videos/{id}/notes", authed(noteHandler.HandleListByVideo, httpx.LenientLimit))
	r.Mux.Handle("GET /api/notes/search", authed(noteHandler.HandleSearch, httpx.LenientLimit))
	r.Mux.Handle("GET /api/notes/{id}", authed(noteHandler.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/notes/{id}", authed(noteHandler.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/notes/{id}/toggle", authed(noteHandler.HandleToggle, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/notes/{id}", authed(noteHandler.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerEvents() {
	eventHandler := &EventHandler{EventService: r.EventService}

	r.Mux.Handle("GET /api/events",
		httpx.Chain(http.HandlerFunc(eventHandler.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /healthz", HealthzHandler(r.store, r.startTime, r.buildVersion))
	r.Mux.Handle("GET /{$}", RootHandler(r.buildVersion))
	r.Mux.Handle("/", http.HandlerFunc(NotFoundHandler))
}
