package handlers

import (
	"net/http"
	"time"

	"yt-mcp/internal/middleware"
	"yt-mcp/internal/models"
	"yt-mcp/internal/session"
)

// Login starts the Google consent flow.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state := session.NewID()
	h.cookies.SetState(w, state)
	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusFound)
}

// Callback completes the consent flow and opens a session.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fail := func(msg string, args ...any) {
		h.lg.WarnContext(ctx, "auth callback failed: "+msg, args...)
		http.Redirect(w, r, h.frontendURL+"/login?error=auth_failed", http.StatusFound)
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		fail("provider error", "error", e)
		return
	}
	state, ok := h.cookies.State(w, r)
	if !ok || state != q.Get("state") {
		fail("state mismatch")
		return
	}
	code := q.Get("code")
	if code == "" {
		fail("missing code")
		return
	}

	tokens, err := h.auth.Exchange(ctx, code)
	if err != nil {
		fail("token exchange", "error", err)
		return
	}
	user, err := h.auth.UserInfo(ctx, tokens.AccessToken)
	if err != nil {
		fail("userinfo", "error", err)
		return
	}

	id := session.NewID()
	auth := &models.AuthSession{User: user, Tokens: tokens, CreatedAt: h.now()}
	if err := h.sessions.Save(ctx, id, auth, session.TTL); err != nil {
		fail("session save", "error", err)
		return
	}
	h.cookies.Set(w, id)

	h.lg.InfoContext(ctx, "user logged in", "user", user.Email)
	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

type sessionResponse struct {
	User            models.GoogleUser `json:"user"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	ExpiresAt       time.Time         `json:"expiresAt"`
	Scope           []string          `json:"scope"`
}

// Session reports the signed in user. Tokens never leave the server.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, middleware.NotAuthenticated)
		return
	}
	scope := s.Auth.Tokens.Scope
	if scope == nil {
		scope = []string{}
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		User:            s.Auth.User,
		IsAuthenticated: true,
		ExpiresAt:       s.Auth.Tokens.ExpiryDate,
		Scope:           scope,
	})
}

// Logout destroys the session and expires its cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		if err := h.sessions.Delete(r.Context(), s.ID); err != nil {
			h.lg.ErrorContext(r.Context(), "logout failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to logout")
			return
		}
	}
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
