package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"yt-mcp/internal/session"
	"yt-mcp/internal/youtube"
	"yt-mcp/pkg/tasks"
)

type TaskHandler struct {
	sessions  session.Store
	newSyncer youtube.SyncerFactory
	lg        *slog.Logger
}

func NewTaskHandler(sessions session.Store, newSyncer youtube.SyncerFactory, lg *slog.Logger) *TaskHandler {
	if lg == nil {
		lg = slog.Default()
	}
	return &TaskHandler{sessions: sessions, newSyncer: newSyncer, lg: lg}
}

// HandleSyncSubscriptionsTask runs a subscription sync with the tokens of
// the session that queued it.
func (h *TaskHandler) HandleSyncSubscriptionsTask(ctx context.Context, t *asynq.Task) error {
	p, err := tasks.ParseSyncSubscriptionsPayload(t)
	if err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %v: %w", err, asynq.SkipRetry)
	}

	sess, err := h.sessions.Get(ctx, p.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			h.lg.WarnContext(ctx, "session expired before sync ran", "session", p.SessionID)
			return fmt.Errorf("session %s: %v: %w", p.SessionID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	syncer, err := h.newSyncer(ctx, sess.Tokens)
	if err != nil {
		return fmt.Errorf("failed to create syncer: %w", err)
	}

	h.lg.InfoContext(ctx, "syncing subscriptions", "user", sess.User.Email)
	res, err := syncer.Sync(ctx)
	if err != nil {
		h.lg.ErrorContext(ctx, "sync failed", "user", sess.User.Email, "error", err)
		return fmt.Errorf("failed to sync subscriptions: %w", err)
	}

	h.lg.InfoContext(ctx, "successfully synced subscriptions",
		"user", sess.User.Email,
		"channels", len(res.Channels),
		"videos", len(res.Videos))
	return nil
}
