package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"yt-mcp/internal/mcp"
	"yt-mcp/internal/middleware"
	"yt-mcp/internal/models"
	"yt-mcp/internal/session"
	"yt-mcp/internal/youtube"
	"yt-mcp/pkg/tasks"
)

// Authenticator is the part of auth.Service the HTTP layer needs.
type Authenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (models.TokenInfo, error)
	Refresh(ctx context.Context, t models.TokenInfo) (models.TokenInfo, error)
	UserInfo(ctx context.Context, accessToken string) (models.GoogleUser, error)
}

// Store is the read side of the document store.
type Store interface {
	ListChannels(ctx context.Context) ([]models.Channel, error)
	RecentVideos(ctx context.Context, limit int) ([]models.Video, error)
}

// Deps wires the backend handlers. AsynqClient and Metrics are optional.
type Deps struct {
	Registry    *mcp.Registry
	Store       Store
	Auth        Authenticator
	Sessions    session.Store
	Cookies     *session.Cookies
	NewSyncer   youtube.SyncerFactory
	AsynqClient tasks.TaskEnqueuer
	Metrics     *middleware.Metrics
	FrontendURL string
	Logger      *slog.Logger
}

type Handlers struct {
	registry    *mcp.Registry
	store       Store
	auth        Authenticator
	sessions    session.Store
	cookies     *session.Cookies
	newSyncer   youtube.SyncerFactory
	asynqClient tasks.TaskEnqueuer
	metrics     *middleware.Metrics
	frontendURL string
	lg          *slog.Logger
	now         func() time.Time
}

func New(d Deps) *Handlers {
	lg := d.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Handlers{
		registry:    d.Registry,
		store:       d.Store,
		auth:        d.Auth,
		sessions:    d.Sessions,
		cookies:     d.Cookies,
		newSyncer:   d.NewSyncer,
		asynqClient: d.AsynqClient,
		metrics:     d.Metrics,
		frontendURL: d.FrontendURL,
		lg:          lg,
		now:         time.Now,
	}
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
