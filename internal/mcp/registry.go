package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"yt-mcp/internal/models"
)

// Namespaces served by the registry.
const (
	NamespaceChannels     = "subscriptions://channels"
	NamespaceRecentVideos = "subscriptions://recent-videos"
	NamespaceCategories   = "subscriptions://categories"
	NamespaceStats        = "subscriptions://stats"
)

// DefaultVideoLimit is used when the query carries no usable limit.
const DefaultVideoLimit = 50

// ErrUnknownNamespace is returned by Invoke for namespaces not in the table.
var ErrUnknownNamespace = errors.New("unknown MCP namespace")

// Query holds optional string parameters for a handler. A missing key means
// the parameter is absent.
type Query map[string]string

// Handler produces the JSON-serializable payload of one namespace.
type Handler func(ctx context.Context, q Query) (any, error)

// Store is the subset of the document store the registry reads from.
type Store interface {
	ListChannels(ctx context.Context) ([]models.Channel, error)
	RecentVideos(ctx context.Context, limit int) ([]models.Video, error)
}

// Registry maps namespaces to handlers. It has no mutators.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds the namespace table over store.
func NewRegistry(store Store) *Registry {
	return &Registry{
		handlers: map[string]Handler{
			NamespaceChannels:     channelsHandler(store),
			NamespaceRecentVideos: recentVideosHandler(store),
			NamespaceCategories:   categoriesHandler,
			NamespaceStats:        statsHandler,
		},
	}
}

// Resolve looks up the handler for ns by exact match.
func (r *Registry) Resolve(ns string) (Handler, bool) {
	h, ok := r.handlers[ns]
	return h, ok
}

// Invoke resolves ns and runs its handler. Handler errors are returned as is.
func (r *Registry) Invoke(ctx context.Context, ns string, q Query) (any, error) {
	h, ok := r.Resolve(ns)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNamespace, ns)
	}
	return h(ctx, q)
}

// Namespaces returns the registered namespaces in lexical order.
func (r *Registry) Namespaces() []string {
	out := make([]string, 0, len(r.handlers))
	for ns := range r.handlers {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// ParseLimit reads the "limit" parameter. Absent, non-numeric and
// non-positive values yield DefaultVideoLimit.
func ParseLimit(q Query) int {
	raw, ok := q["limit"]
	if !ok {
		return DefaultVideoLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultVideoLimit
	}
	return n
}

func channelsHandler(store Store) Handler {
	return func(ctx context.Context, _ Query) (any, error) {
		channels, err := store.ListChannels(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]ChannelResource, len(channels))
		for i, ch := range channels {
			out[i] = ChannelToResource(ch)
		}
		return out, nil
	}
}

func recentVideosHandler(store Store) Handler {
	return func(ctx context.Context, q Query) (any, error) {
		videos, err := store.RecentVideos(ctx, ParseLimit(q))
		if err != nil {
			return nil, err
		}
		out := make([]VideoResource, len(videos))
		for i, v := range videos {
			out[i] = VideoToResource(v)
		}
		return out, nil
	}
}
