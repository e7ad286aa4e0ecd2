package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-mcp/internal/mcp"
)

type fakeSource struct {
	mu    sync.Mutex
	data  map[string]string
	err   map[string]error
	calls []string
}

func (f *fakeSource) Query(_ context.Context, ns string, _ mcp.Query) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ns)
	f.mu.Unlock()
	if err := f.err[ns]; err != nil {
		return nil, err
	}
	return json.RawMessage(f.data[ns]), nil
}

type fakeCompleter struct {
	system, user string
	reply        string
	err          error
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func items(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":"%s%d"}`, prefix, i)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func newSource() *fakeSource {
	return &fakeSource{
		data: map[string]string{
			mcp.NamespaceChannels:     items("c", 8),
			mcp.NamespaceRecentVideos: items("v", 2),
			mcp.NamespaceStats:        `{"topChannels":["Tech"],"mostWatchedCategory":"Tech","timeSpent":"10 hours"}`,
		},
		err: map[string]error{},
	}
}

func TestPrompt(t *testing.T) {
	src := newSource()
	comp := &fakeCompleter{reply: "You watch a lot of tech."}
	svc := NewService(src, comp, nil)

	reply, err := svc.Prompt(context.Background(), "What do I watch?")
	require.NoError(t, err)

	assert.Equal(t, "You watch a lot of tech.", reply)
	assert.Equal(t, "What do I watch?", comp.user)
	assert.ElementsMatch(t, []string{mcp.NamespaceChannels, mcp.NamespaceRecentVideos, mcp.NamespaceStats}, src.calls)

	assert.Contains(t, comp.system, `{"id":"c4"}`)
	assert.NotContains(t, comp.system, `{"id":"c5"}`)
	assert.Contains(t, comp.system, `{"id":"v1"}`)
	assert.Contains(t, comp.system, `"timeSpent":"10 hours"`)
}

func TestPromptContextFailure(t *testing.T) {
	src := newSource()
	src.err[mcp.NamespaceStats] = errors.New("backend down")
	comp := &fakeCompleter{reply: "unused"}

	_, err := NewService(src, comp, nil).Prompt(context.Background(), "hi")

	assert.ErrorIs(t, err, ErrAgentFailed)
	assert.Empty(t, comp.system, "completer must not be called")
}

func TestPromptCompletionFailure(t *testing.T) {
	cause := errors.New("quota")
	_, err := NewService(newSource(), &fakeCompleter{err: cause}, nil).Prompt(context.Background(), "hi")

	assert.ErrorIs(t, err, ErrAgentFailed)
	assert.ErrorIs(t, err, cause)
}

func TestSystemPrompt(t *testing.T) {
	got, err := SystemPrompt(json.RawMessage(`[]`), json.RawMessage(`null`), json.RawMessage(`{"a": 1}`))
	require.NoError(t, err)
	assert.Contains(t, got, "- Subscribed Channels: []")
	assert.Contains(t, got, "- Recent Videos: []")
	assert.Contains(t, got, `- Personal Analytics: {"a":1}`)

	_, err = SystemPrompt(json.RawMessage(`{}`), json.RawMessage(`[]`), json.RawMessage(`{}`))
	assert.Error(t, err)
}
