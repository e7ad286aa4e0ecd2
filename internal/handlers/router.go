package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"yt-mcp/internal/middleware"
)

// Rate limits for the expensive endpoints.
var (
	syncRate   = rate.Every(20 * time.Second)
	syncBurst  = 3
	agentRate  = rate.Every(2 * time.Second)
	agentBurst = 5
)

// Router builds the backend's HTTP surface.
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter().SkipClean(true).UseEncodedPath()
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
		r.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.NewSessions(h.sessions, h.cookies, h.lg).Load)

	api.HandleFunc("/mcp", h.ListMCP).Methods(http.MethodGet)
	api.HandleFunc("/mcp/{namespace:.+}", h.GetMCP).Methods(http.MethodGet)

	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodGet)
	api.HandleFunc("/auth/callback", h.Callback).Methods(http.MethodGet)
	api.HandleFunc("/auth/session", h.Session).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	api.HandleFunc("/feed/recent-videos.rss", h.GetRSSFeed).Methods(http.MethodGet)

	yt := api.PathPrefix("/youtube").Subrouter()
	yt.Use(middleware.RequireSession)
	yt.HandleFunc("/channels", h.ListChannels).Methods(http.MethodGet)

	limited := yt.NewRoute().Subrouter()
	limited.Use(middleware.NewRateLimiterMiddleware(syncRate, syncBurst, middleware.ByUser, h.lg).Middleware)
	limited.HandleFunc("/sync", h.SyncYouTube).Methods(http.MethodGet)
	limited.HandleFunc("/sync/async", h.SyncYouTubeAsync).Methods(http.MethodPost)

	return wrap(r, h.frontendURL, h.lg)
}

// Router builds the agent service's HTTP surface.
func (a *Agent) Router(metrics *middleware.Metrics, frontendURL string) http.Handler {
	r := mux.NewRouter()
	if metrics != nil {
		r.Use(metrics.Middleware)
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	limited := r.NewRoute().Subrouter()
	limited.Use(middleware.NewRateLimiterMiddleware(agentRate, agentBurst, middleware.ByIP, a.lg).Middleware)
	limited.HandleFunc("/agent", a.PostAgent).Methods(http.MethodPost)

	return wrap(r, frontendURL, a.lg)
}

func wrap(next http.Handler, origin string, lg *slog.Logger) http.Handler {
	return middleware.Recover(lg)(middleware.CORS(origin)(middleware.Logging(lg)(next)))
}
