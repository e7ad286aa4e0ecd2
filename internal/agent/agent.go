// Package agent answers free-text questions about a user's subscriptions
// with a chat completion grounded in MCP context.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"yt-mcp/internal/mcp"
)

// ErrAgentFailed wraps every failure of Prompt.
var ErrAgentFailed = errors.New("failed to process AI response")

// contextItems bounds how many channels and videos go into the prompt.
const contextItems = 5

// ContextSource reads MCP namespaces. mcpclient.Client satisfies it.
type ContextSource interface {
	Query(ctx context.Context, ns string, q mcp.Query) (json.RawMessage, error)
}

// Completer produces a single chat completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	source    ContextSource
	completer Completer
	lg        *slog.Logger
}

func NewService(source ContextSource, completer Completer, lg *slog.Logger) *Service {
	if lg == nil {
		lg = slog.Default()
	}
	return &Service{source: source, completer: completer, lg: lg}
}

// Prompt fetches channels, recent videos and stats concurrently, then asks
// the completer. All three fetches must succeed.
func (s *Service) Prompt(ctx context.Context, query string) (string, error) {
	var channels, videos, stats json.RawMessage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		channels, err = s.fetch(gctx, mcp.NamespaceChannels)
		return err
	})
	g.Go(func() (err error) {
		videos, err = s.fetch(gctx, mcp.NamespaceRecentVideos)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.fetch(gctx, mcp.NamespaceStats)
		return err
	})
	if err := g.Wait(); err != nil {
		s.lg.ErrorContext(ctx, "agent context fetch failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	system, err := SystemPrompt(channels, videos, stats)
	if err != nil {
		s.lg.ErrorContext(ctx, "agent prompt build failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	reply, err := s.completer.Complete(ctx, system, query)
	if err != nil {
		s.lg.ErrorContext(ctx, "completion failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}
	return reply, nil
}

func (s *Service) fetch(ctx context.Context, ns string) (json.RawMessage, error) {
	data, err := s.source.Query(ctx, ns, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ns, err)
	}
	return data, nil
}
