package test

import (
	"context"
	"sort"
	"sync"

	"yt-mcp/internal/models"
)

// MemoryStore is an in-memory stand-in for db.Store with the same upsert
// semantics. Err, when set, is returned by every read.
type MemoryStore struct {
	mu       sync.Mutex
	channels map[string]models.Channel
	videos   map[string]models.Video
	Err      error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		channels: make(map[string]models.Channel),
		videos:   make(map[string]models.Video),
	}
}

func (m *MemoryStore) UpsertChannel(_ context.Context, ch models.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[ch.ChannelID] = ch
	return nil
}

func (m *MemoryStore) UpsertVideo(_ context.Context, v models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos[v.VideoID] = v
	return nil
}

func (m *MemoryStore) ListChannels(context.Context) ([]models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Channel, 0, len(m.channels))
	for _, ch := range m.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *MemoryStore) RecentVideos(_ context.Context, limit int) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Video, 0, len(m.videos))
	for _, v := range m.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountChannels(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels), m.Err
}

func (m *MemoryStore) CountVideos(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.videos), m.Err
}
