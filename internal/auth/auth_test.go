package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"yt-mcp/internal/models"
)

// newGoogleStub serves the token and userinfo endpoints.
func newGoogleStub(t *testing.T, tokenResp map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tokenResp)
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "1001",
			"email":   "viewer@example.com",
			"name":    "Viewer",
			"picture": "https://img/p.png",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, srv *httptest.Server) *Service {
	t.Helper()
	s, err := NewService(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:4000/api/auth/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"},
		APIEndpoint:  srv.URL + "/",
	})
	require.NoError(t, err)
	return s
}

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService(Config{ClientID: "id", ClientSecret: "secret"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthURL(t *testing.T) {
	s, err := NewService(Config{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/cb"})
	require.NoError(t, err)

	u, err := url.Parse(s.AuthURL("state-1"))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/youtube.readonly")
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/userinfo.email")
	assert.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/userinfo.profile")
}

func TestExchange(t *testing.T) {
	srv := newGoogleStub(t, map[string]any{
		"access_token":  "access-1",
		"refresh_token": "refresh-1",
		"token_type":    "Bearer",
		"expires_in":    3600,
		"scope":         "scope-a scope-b",
	})
	s := newTestService(t, srv)

	tok, err := s.Exchange(context.Background(), "code-1")
	require.NoError(t, err)

	assert.Equal(t, "access-1", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, []string{"scope-a", "scope-b"}, tok.Scope)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiryDate, time.Minute)
}

func TestExchangeDefaultsExpiry(t *testing.T) {
	srv := newGoogleStub(t, map[string]any{"access_token": "access-1", "token_type": "Bearer"})
	s := newTestService(t, srv)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tok, err := s.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), tok.ExpiryDate)
}

func TestExchangeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()
	s := newTestService(t, srv)

	_, err := s.Exchange(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRefreshKeepsRefreshToken(t *testing.T) {
	srv := newGoogleStub(t, map[string]any{
		"access_token": "access-2",
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
	s := newTestService(t, srv)

	tok, err := s.Refresh(context.Background(), models.TokenInfo{
		AccessToken:  "old",
		RefreshToken: "refresh-1",
		Scope:        []string{"scope-a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "access-2", tok.AccessToken)
	assert.Equal(t, "refresh-1", tok.RefreshToken)
	assert.Equal(t, []string{"scope-a"}, tok.Scope)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	s, err := NewService(Config{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/cb"})
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), models.TokenInfo{AccessToken: "a"})
	assert.Error(t, err)
}

func TestUserInfo(t *testing.T) {
	srv := newGoogleStub(t, nil)
	s := newTestService(t, srv)

	u, err := s.UserInfo(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, models.GoogleUser{
		ID:          "1001",
		Email:       "viewer@example.com",
		DisplayName: "Viewer",
		Picture:     "https://img/p.png",
	}, u)

	_, err = s.UserInfo(context.Background(), "wrong")
	assert.Error(t, err)
}
