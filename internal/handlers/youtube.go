package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yt-mcp/internal/middleware"
	"yt-mcp/internal/models"
	"yt-mcp/internal/session"
	"yt-mcp/pkg/tasks"
)

var errSessionExpired = errors.New("session expired")

type syncResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	ChannelsCount int              `json:"channelsCount"`
	VideosCount   int              `json:"videosCount"`
	Channels      []models.Channel `json:"channels"`
	Videos        []models.Video   `json:"videos"`
}

// freshTokens refreshes an expired access token and stores the result in
// the session. The session keeps the lifetime it was created with.
func (h *Handlers) freshTokens(ctx context.Context, s *session.Session) (models.TokenInfo, error) {
	tokens := s.Auth.Tokens
	if !tokens.Expired(h.now()) || tokens.RefreshToken == "" {
		return tokens, nil
	}
	ttl := session.TTL
	if !s.Auth.CreatedAt.IsZero() {
		ttl = s.Auth.CreatedAt.Add(session.TTL).Sub(h.now())
	}
	if ttl <= 0 {
		return models.TokenInfo{}, errSessionExpired
	}
	refreshed, err := h.auth.Refresh(ctx, tokens)
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("refresh token: %w", err)
	}
	s.Auth.Tokens = refreshed
	if err := h.sessions.Save(ctx, s.ID, s.Auth, ttl); err != nil {
		return models.TokenInfo{}, fmt.Errorf("save refreshed session: %w", err)
	}
	return refreshed, nil
}

// SyncYouTube pulls the user's subscriptions and their recent uploads into
// the store.
func (h *Handlers) SyncYouTube(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := session.FromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.NotAuthenticated)
		return
	}

	tokens, err := h.freshTokens(ctx, s)
	if err != nil {
		h.lg.WarnContext(ctx, "token refresh failed", "user", s.Auth.User.Email, "error", err)
		writeError(w, http.StatusUnauthorized, middleware.NotAuthenticated)
		return
	}

	syncer, err := h.newSyncer(ctx, tokens)
	if err != nil {
		h.lg.ErrorContext(ctx, "failed to create syncer", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync YouTube data")
		return
	}
	res, err := syncer.Sync(ctx)
	if err != nil {
		h.lg.ErrorContext(ctx, "sync failed", "user", s.Auth.User.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync YouTube data")
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Success:       true,
		Message:       "YouTube data synced successfully",
		ChannelsCount: len(res.Channels),
		VideosCount:   len(res.Videos),
		Channels:      res.Channels,
		Videos:        res.Videos,
	})
}

// SyncYouTubeAsync queues a sync on the worker.
func (h *Handlers) SyncYouTubeAsync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, ok := session.FromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.NotAuthenticated)
		return
	}
	if h.asynqClient == nil {
		writeError(w, http.StatusServiceUnavailable, "Background sync is not configured")
		return
	}

	task, err := tasks.NewSyncSubscriptionsTask(s.ID)
	if err != nil {
		h.lg.ErrorContext(ctx, "failed to create sync task", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	info, err := h.asynqClient.EnqueueContext(ctx, task)
	if err != nil {
		h.lg.ErrorContext(ctx, "failed to enqueue sync task", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.lg.InfoContext(ctx, "enqueued sync task", "task", info.ID, "user", s.Auth.User.Email)
	writeJSON(w, http.StatusAccepted, map[string]string{"taskId": info.ID})
}

// ListChannels returns the stored channels.
func (h *Handlers) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.store.ListChannels(r.Context())
	if err != nil {
		h.lg.ErrorContext(r.Context(), "failed to list channels", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if channels == nil {
		channels = []models.Channel{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}
