package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-mcp/internal/mcp"
	"yt-mcp/internal/test"
)

// registrySource serves namespaces straight from a registry.
type registrySource struct {
	reg *mcp.Registry
}

func (r registrySource) Query(ctx context.Context, ns string, q mcp.Query) (json.RawMessage, error) {
	v, err := r.reg.Invoke(ctx, ns, q)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

type failingSource struct{}

func (failingSource) Query(context.Context, string, mcp.Query) (json.RawMessage, error) {
	return nil, errors.New("backend unreachable")
}

func connect(t *testing.T, src Source) *gomcp.ClientSession {
	t.Helper()
	reg := mcp.NewRegistry(test.NewMemoryStore())
	s, err := NewServer(src, reg.Namespaces(), "test", nil)
	require.NoError(t, err)

	ctx := context.Background()
	st, ct := gomcp.NewInMemoryTransports()
	ss, err := s.mcp.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	cs, err := gomcp.NewClient(&gomcp.Implementation{Name: "client", Version: "test"}, nil).Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func TestNewServerRequiresSource(t *testing.T) {
	_, err := NewServer(nil, nil, "test", nil)
	assert.Error(t, err)
}

func TestListResources(t *testing.T) {
	cs := connect(t, registrySource{reg: mcp.NewRegistry(test.NewMemoryStore())})

	res, err := cs.ListResources(context.Background(), nil)
	require.NoError(t, err)

	uris := make([]string, len(res.Resources))
	for i, r := range res.Resources {
		uris[i] = r.URI
	}
	assert.ElementsMatch(t, []string{
		mcp.NamespaceCategories, mcp.NamespaceChannels, mcp.NamespaceRecentVideos, mcp.NamespaceStats,
	}, uris)
}

func TestReadResource(t *testing.T) {
	cs := connect(t, registrySource{reg: mcp.NewRegistry(test.NewMemoryStore())})

	res, err := cs.ReadResource(context.Background(), &gomcp.ReadResourceParams{URI: mcp.NamespaceStats})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, "topChannels")
}

func TestReadResourceFailure(t *testing.T) {
	cs := connect(t, failingSource{})

	_, err := cs.ReadResource(context.Background(), &gomcp.ReadResourceParams{URI: mcp.NamespaceChannels})
	assert.Error(t, err)
}

func TestQueryTool(t *testing.T) {
	cs := connect(t, registrySource{reg: mcp.NewRegistry(test.NewMemoryStore())})
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &gomcp.CallToolParams{
		Name:      "query_namespace",
		Arguments: map[string]any{"namespace": mcp.NamespaceCategories},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Contains(t, res.Content[0].(*gomcp.TextContent).Text, "category")

	res, err = cs.CallTool(ctx, &gomcp.CallToolParams{
		Name:      "query_namespace",
		Arguments: map[string]any{"namespace": "unknown://thing"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
