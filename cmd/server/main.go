package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"yt-mcp/internal/auth"
	"yt-mcp/internal/config"
	"yt-mcp/internal/db"
	"yt-mcp/internal/handlers"
	"yt-mcp/internal/mcp"
	"yt-mcp/internal/middleware"
	"yt-mcp/internal/session"
	"yt-mcp/internal/youtube"
	"yt-mcp/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg := config.Load()
	lg := cfg.NewLogger(os.Stdout)

	if err := cfg.ValidateServer(); err != nil {
		lg.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("backend starting", "commit", CommitSHA)
	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("backend stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *slog.Logger) error {
	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	authSvc, err := auth.NewService(auth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
	})
	if err != nil {
		return err
	}

	b, err := newBackends(ctx, cfg.RedisAddr, lg)
	if err != nil {
		return err
	}
	defer b.Close()

	h := handlers.New(handlers.Deps{
		Registry: mcp.NewRegistry(store),
		Store:    store,
		Auth:     authSvc,
		Sessions: b.sessions,
		Cookies:  session.NewCookies(cfg.SessionSecret, cfg.Production()),
		NewSyncer: youtube.NewSyncerFactory(authSvc.TokenSource, store, nil,
			youtube.WithConcurrency(cfg.SyncConcurrency),
			youtube.WithLogger(lg)),
		AsynqClient: b.enqueuer,
		Metrics:     middleware.NewMetrics("backend"),
		FrontendURL: cfg.FrontendURL,
		Logger:      lg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return handlers.Serve(ctx, srv, lg)
}

// backends holds the Redis backed session store and task queue, or their
// in-process fallbacks when no Redis is configured.
type backends struct {
	sessions session.Store
	enqueuer tasks.TaskEnqueuer
	closers  []func() error
}

func newBackends(ctx context.Context, redisAddr string, lg *slog.Logger) (*backends, error) {
	if redisAddr == "" {
		lg.Warn("REDIS_ADDR not set: sessions are kept in memory and background sync is disabled")
		return &backends{sessions: session.NewMemoryStore()}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	return &backends{
		sessions: session.NewRedisStore(rdb),
		enqueuer: client,
		closers:  []func() error{client.Close, rdb.Close},
	}, nil
}

func (b *backends) Close() {
	for _, c := range b.closers {
		c()
	}
}
