package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName      = "ytmcp_session"
	StateCookieName = "ytmcp_oauth_state"
)

// Cookies signs session ids and builds the cookies that carry them.
type Cookies struct {
	secret []byte
	secure bool
}

func NewCookies(secret string, secure bool) *Cookies {
	return &Cookies{secret: []byte(secret), secure: secure}
}

func (c *Cookies) sign(v string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(v))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode returns the signed cookie value for id.
func (c *Cookies) Encode(id string) string {
	return id + "." + c.sign(id)
}

// Decode verifies a cookie value and returns the session id.
func (c *Cookies) Decode(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", false
	}
	return id, true
}

// SessionID extracts and verifies the session id carried by r.
func (c *Cookies) SessionID(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return c.Decode(ck.Value)
}

// Set writes the session cookie for id.
func (c *Cookies) Set(w http.ResponseWriter, id string) {
	http.SetCookie(w, c.cookie(CookieName, c.Encode(id), TTL))
}

// Clear expires the session cookie.
func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(CookieName, "", -1))
}

// SetState writes the short-lived OAuth state cookie.
func (c *Cookies) SetState(w http.ResponseWriter, state string) {
	http.SetCookie(w, c.cookie(StateCookieName, c.Encode(state), 10*time.Minute))
}

// State returns the verified OAuth state from r and expires its cookie.
func (c *Cookies) State(w http.ResponseWriter, r *http.Request) (string, bool) {
	ck, err := r.Cookie(StateCookieName)
	if err != nil {
		return "", false
	}
	http.SetCookie(w, c.cookie(StateCookieName, "", -1))
	return c.Decode(ck.Value)
}

func (c *Cookies) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		ck.MaxAge = -1
	} else {
		ck.MaxAge = int(maxAge.Seconds())
	}
	return ck
}
