// Package mcpserver exposes the subscription namespaces over the Model
// Context Protocol on stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"yt-mcp/internal/mcp"
)

// Source reads namespaces. mcpclient.Client satisfies it.
type Source interface {
	Query(ctx context.Context, ns string, q mcp.Query) (json.RawMessage, error)
}

var descriptions = map[string]string{
	mcp.NamespaceChannels:     "Channels the user is subscribed to.",
	mcp.NamespaceRecentVideos: "Most recent uploads of subscribed channels, newest first.",
	mcp.NamespaceCategories:   "Subscribed channels grouped by category (placeholder data).",
	mcp.NamespaceStats:        "Personal viewing summary (placeholder data).",
}

// Server wraps the MCP server around a namespace source.
type Server struct {
	mcp    *gomcp.Server
	source Source
	lg     *slog.Logger
}

// NewServer registers one resource per namespace plus a query tool.
func NewServer(source Source, namespaces []string, version string, lg *slog.Logger) (*Server, error) {
	if source == nil {
		return nil, fmt.Errorf("namespace source is required")
	}
	if lg == nil {
		lg = slog.Default()
	}

	s := &Server{
		mcp: gomcp.NewServer(
			&gomcp.Implementation{Name: "ytmcp", Version: version},
			&gomcp.ServerOptions{Logger: lg},
		),
		source: source,
		lg:     lg,
	}

	for _, ns := range namespaces {
		s.mcp.AddResource(&gomcp.Resource{
			URI:         ns,
			Name:        ns,
			Description: descriptions[ns],
			MIMEType:    "application/json",
		}, s.readResource)
	}
	s.registerTools()

	return s, nil
}

// Serve runs the server on stdin/stdout until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

func (s *Server) readResource(ctx context.Context, req *gomcp.ReadResourceRequest) (*gomcp.ReadResourceResult, error) {
	uri := req.Params.URI
	data, err := s.source.Query(ctx, uri, nil)
	if err != nil {
		s.lg.ErrorContext(ctx, "resource read failed", "uri", uri, "error", err)
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return &gomcp.ReadResourceResult{
		Contents: []*gomcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "query_namespace",
		Description: "Read a subscriptions:// namespace, optionally limiting the number of videos.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"namespace": {"type": "string", "description": "Namespace to read, e.g. subscriptions://recent-videos.", "minLength": 1},
				"limit": {"type": "number", "description": "Maximum number of videos (recent-videos only, default 50)"}
			},
			"required": ["namespace"]
		}`),
	}, s.handleQuery)
}

func (s *Server) handleQuery(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Namespace string `json:"namespace"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Namespace == "" {
		return toolError("namespace is required"), nil
	}

	var q mcp.Query
	if args.Limit > 0 {
		q = mcp.Query{"limit": strconv.Itoa(args.Limit)}
	}
	data, err := s.source.Query(ctx, args.Namespace, q)
	if err != nil {
		return toolError("failed to read %s: %v", args.Namespace, err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(format string, args ...any) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
