package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"yt-mcp/internal/auth"
	"yt-mcp/internal/config"
	"yt-mcp/internal/db"
	"yt-mcp/internal/session"
	"yt-mcp/internal/worker"
	"yt-mcp/internal/youtube"
	"yt-mcp/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg := config.Load()
	lg := cfg.NewLogger(os.Stdout)

	if err := cfg.ValidateWorker(); err != nil {
		lg.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Error("could not open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	authSvc, err := auth.NewService(auth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
	})
	if err != nil {
		lg.Error("could not create auth service", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			// Syncs are quota heavy; run a few at a time.
			Concurrency: 2,

			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				lg.ErrorContext(ctx, "task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(
		session.NewRedisStore(rdb),
		youtube.NewSyncerFactory(authSvc.TokenSource, store, nil,
			youtube.WithConcurrency(cfg.SyncConcurrency),
			youtube.WithLogger(lg)),
		lg,
	)
	mux.HandleFunc(tasks.TypeSyncSubscriptions, taskHandler.HandleSyncSubscriptionsTask)

	lg.Info("worker starting", "commit", CommitSHA)
	if err := srv.Start(mux); err != nil {
		lg.Error("could not run worker", "error", err)
		os.Exit(1)
	}
	<-ctx.Done()
	srv.Shutdown()
}
