// Package session keeps authenticated sessions on the server side. The
// browser only holds a signed, opaque session id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"yt-mcp/internal/models"
)

// TTL bounds the lifetime of a session and its cookie.
const TTL = 24 * time.Hour

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (*models.AuthSession, error)
	Save(ctx context.Context, id string, s *models.AuthSession, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session is the typed value attached to a request context.
type Session struct {
	ID   string
	Auth *models.AuthSession
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached to ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil && s.Auth != nil
}
