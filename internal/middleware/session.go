package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"yt-mcp/internal/session"
)

// NotAuthenticated is the body message of 401 responses.
const NotAuthenticated = "Not authenticated. Please log in via /api/auth/login"

// Sessions attaches the caller's session to the request context.
type Sessions struct {
	store   session.Store
	cookies *session.Cookies
	lg      *slog.Logger
}

func NewSessions(store session.Store, cookies *session.Cookies, lg *slog.Logger) *Sessions {
	if lg == nil {
		lg = slog.Default()
	}
	return &Sessions{store: store, cookies: cookies, lg: lg}
}

// Load attaches the session named by the request cookie, if it exists.
// Requests without a valid session pass through unchanged. A store failure
// answers 500 rather than treating the caller as anonymous.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.cookies.SessionID(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		auth, err := s.store.Get(r.Context(), id)
		if errors.Is(err, session.ErrNotFound) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			s.lg.ErrorContext(r.Context(), "session lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		ctx := session.NewContext(r.Context(), &session.Session{ID: id, Auth: auth})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests that carry no session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, NotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
