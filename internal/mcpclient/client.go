// Package mcpclient talks to the backend's MCP HTTP endpoint.
package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yt-mcp/internal/mcp"
)

// DefaultBaseURL is where the backend listens in development.
const DefaultBaseURL = "http://localhost:4000"

// Error is a non-2xx answer from the endpoint.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("MCP error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an unknown namespace answer.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// Client queries MCP namespaces over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for baseURL with a bounded request timeout.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Namespace string          `json:"namespace"`
	Data      json.RawMessage `json:"data"`
}

// Query fetches the payload of namespace ns.
func (c *Client) Query(ctx context.Context, ns string, q mcp.Query) (json.RawMessage, error) {
	u := c.BaseURL + "/api/mcp/" + url.PathEscape(ns)
	if len(q) > 0 {
		v := make(url.Values, len(q))
		for k, val := range q {
			v.Set(k, val)
		}
		u += "?" + v.Encode()
	}

	var env envelope
	if err := c.get(ctx, u, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Namespaces lists the namespaces the backend serves.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	var out struct {
		Namespaces []string `json:"namespaces"`
	}
	if err := c.get(ctx, c.BaseURL+"/api/mcp", &out); err != nil {
		return nil, err
	}
	return out.Namespaces, nil
}

func (c *Client) get(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("MCP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode MCP response: %w", err)
	}
	return nil
}
