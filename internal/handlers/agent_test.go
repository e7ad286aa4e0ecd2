package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yt-mcp/internal/agent"
)

type fakePrompter struct {
	got   string
	reply string
	err   error
}

func (f *fakePrompter) Prompt(_ context.Context, query string) (string, error) {
	f.got = query
	return f.reply, f.err
}

func postAgent(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/agent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPostAgent(t *testing.T) {
	p := &fakePrompter{reply: "Try the new Tech upload."}
	h := NewAgent(p, nil).Router(nil, frontendURL)

	rr := postAgent(h, `{"query":"What should I watch?"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"reply":"Try the new Tech upload."}`, rr.Body.String())
	assert.Equal(t, "What should I watch?", p.got)
}

func TestPostAgentValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"number", `{"query":123}`},
		{"missing", `{}`},
		{"empty", `{"query":""}`},
		{"not json", `query=hi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePrompter{}
			rr := postAgent(NewAgent(p, nil).Router(nil, frontendURL), tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"Query is required and must be a string"}`, rr.Body.String())
			assert.Empty(t, p.got)
		})
	}
}

func TestPostAgentFailure(t *testing.T) {
	p := &fakePrompter{err: errors.Join(agent.ErrAgentFailed, errors.New("upstream"))}
	rr := postAgent(NewAgent(p, nil).Router(nil, frontendURL), `{"query":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to process AI response"}`, rr.Body.String())
}

func TestPostAgentRateLimited(t *testing.T) {
	h := NewAgent(&fakePrompter{reply: "ok"}, nil).Router(nil, frontendURL)
	var last int
	for i := 0; i <= agentBurst; i++ {
		last = postAgent(h, `{"query":"hi"}`).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
