package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-mcp/internal/models"
)

func testSession() *models.AuthSession {
	return &models.AuthSession{
		User: models.GoogleUser{ID: "42", Email: "user@example.com", DisplayName: "User"},
		Tokens: models.TokenInfo{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiryDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			Scope:        []string{"a", "b"},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "sid", testSession(), TTL))
	got, err := m.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.User.Email)

	now = now.Add(TTL)
	_, err = m.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "sid2", testSession(), TTL))
	require.NoError(t, m.Delete(ctx, "sid2"))
	_, err = m.Get(ctx, "sid2")
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeRedis struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	b, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(b), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", f.err)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), f.err)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	store := &RedisStore{rdb: fake}

	_, err := store.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "sid", testSession(), TTL))
	assert.Equal(t, TTL, fake.ttl[keyPrefix+"sid"])

	var stored models.AuthSession
	require.NoError(t, json.Unmarshal(fake.data[keyPrefix+"sid"], &stored))
	assert.Equal(t, "refresh", stored.Tokens.RefreshToken)

	got, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, testSession().User, got.User)
	assert.True(t, testSession().Tokens.ExpiryDate.Equal(got.Tokens.ExpiryDate))

	require.NoError(t, store.Delete(ctx, "sid"))
	_, err = store.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreError(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	store := &RedisStore{rdb: fake}

	_, err := store.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, fake.err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCookiesRoundTrip(t *testing.T) {
	c := NewCookies("secret", true)

	id := NewID()
	got, ok := c.Decode(c.Encode(id))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = NewCookies("other", true).Decode(c.Encode(id))
	assert.False(t, ok, "signature from a different secret must be rejected")

	for _, v := range []string{"", "noseparator", ".sig", id + ".tampered"} {
		_, ok := c.Decode(v)
		assert.False(t, ok, v)
	}
}

func TestCookiesSetAndRead(t *testing.T) {
	c := NewCookies("secret", true)
	rr := httptest.NewRecorder()
	c.Set(rr, "abc")

	resp := rr.Result()
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, CookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, int(TTL.Seconds()), ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	id, ok := c.SessionID(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestStateCookie(t *testing.T) {
	c := NewCookies("secret", false)
	rr := httptest.NewRecorder()
	c.SetState(rr, "xyz")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rr.Result().Cookies()[0])

	rr2 := httptest.NewRecorder()
	state, ok := c.State(rr2, req)
	assert.True(t, ok)
	assert.Equal(t, "xyz", state)
	assert.Equal(t, -1, rr2.Result().Cookies()[0].MaxAge)
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), &Session{ID: "sid", Auth: testSession()})
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sid", s.ID)
}
