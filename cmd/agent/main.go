package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yt-mcp/internal/agent"
	"yt-mcp/internal/config"
	"yt-mcp/internal/handlers"
	"yt-mcp/internal/mcpclient"
	"yt-mcp/internal/middleware"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg := config.Load()
	lg := cfg.NewLogger(os.Stdout)

	if err := cfg.ValidateAgent(); err != nil {
		lg.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := agent.NewService(
		mcpclient.New(cfg.BackendURL),
		agent.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
		lg,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.AgentPort,
		Handler:           handlers.NewAgent(svc, lg).Router(middleware.NewMetrics("agent"), cfg.FrontendURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lg.Info("agent starting", "commit", CommitSHA, "backend", cfg.BackendURL)
	if err := handlers.Serve(ctx, srv, lg); err != nil {
		lg.Error("agent stopped", "error", err)
		os.Exit(1)
	}
}
