package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-mcp/internal/mcp"
)

type fakeQuerier struct {
	data json.RawMessage
	err  error
	ns   string
	q    mcp.Query
}

func (f *fakeQuerier) Query(_ context.Context, ns string, q mcp.Query) (json.RawMessage, error) {
	f.ns, f.q = ns, q
	return f.data, f.err
}

func TestRenderChannels(t *testing.T) {
	out, err := Render(mcp.NamespaceChannels, json.RawMessage(
		`[{"id":"UC1","title":"Tech Daily","description":"Gadgets","thumbnail":"","subscribedSince":"2023-05-01T00:00:00Z"}]`))
	require.NoError(t, err)
	assert.Contains(t, out, "Subscribed Channels (1)")
	assert.Contains(t, out, "Tech Daily")
	assert.Contains(t, out, "UC1")
	assert.Contains(t, out, "2023-05-01")
}

func TestRenderVideos(t *testing.T) {
	out, err := Render(mcp.NamespaceRecentVideos, json.RawMessage(
		`[{"id":"v1","channelId":"UC1","title":"Unboxing","thumbnail":"","publishedAt":"2024-02-03T10:00:00Z"}]`))
	require.NoError(t, err)
	assert.Contains(t, out, "Recent Videos (1)")
	assert.Contains(t, out, "Unboxing")
	assert.Contains(t, out, "2024-02-03")
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render(mcp.NamespaceChannels, json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}

func TestRenderCategoriesAndStats(t *testing.T) {
	out, err := Render(mcp.NamespaceCategories, json.RawMessage(`[{"category":"Tech","channels":["A","B"]}]`))
	require.NoError(t, err)
	assert.Contains(t, out, "A, B")

	out, err = Render(mcp.NamespaceStats, json.RawMessage(`{"topChannels":["A"],"mostWatchedCategory":"Tech","timeSpent":"1 hr"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "Most watched category")
	assert.Contains(t, out, "1 hr")
}

func TestRenderUnknownNamespace(t *testing.T) {
	out, err := Render("other://thing", json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestRenderBadPayload(t *testing.T) {
	_, err := Render(mcp.NamespaceChannels, json.RawMessage(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 100)
	got := truncate(string(long))
	assert.Equal(t, maxCell, len([]rune(got)))
	assert.Equal(t, "a b", truncate("a\n  b"))
}

func TestMenuShow(t *testing.T) {
	var out bytes.Buffer
	q := &fakeQuerier{data: json.RawMessage(`[]`)}
	m := NewMenu(q, &out)

	m.Show(context.Background(), mcp.NamespaceRecentVideos, mcp.Query{"limit": "10"})
	assert.Equal(t, mcp.NamespaceRecentVideos, q.ns)
	assert.Equal(t, "10", q.q["limit"])
	assert.Contains(t, out.String(), "Recent Videos")

	out.Reset()
	q.err = errors.New("MCP error (404): Unknown MCP namespace")
	m.Show(context.Background(), "unknown://x", nil)
	assert.Contains(t, out.String(), "Unknown MCP namespace")
}

func TestValPositiveInt(t *testing.T) {
	assert.NoError(t, valPositiveInt("10"))
	assert.Error(t, valPositiveInt("0"))
	assert.Error(t, valPositiveInt("ten"))
}
