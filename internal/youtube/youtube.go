// Package youtube pulls the caller's subscriptions and the recent uploads of
// each subscribed channel from the YouTube Data API and caches them in the
// document store.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"yt-mcp/internal/models"
)

const (
	subscriptionsPageSize = 50
	videosPerChannel      = 5
	defaultConcurrency    = 4
)

// Store is the write side of the document store.
type Store interface {
	UpsertChannel(ctx context.Context, ch models.Channel) error
	UpsertVideo(ctx context.Context, v models.Video) error
}

// Result is the outcome of a full sync.
type Result struct {
	Channels []models.Channel
	Videos   []models.Video
}

// Fetcher talks to the YouTube Data API on behalf of one user.
type Fetcher struct {
	svc         *yt.Service
	store       Store
	concurrency int
	lg          *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithConcurrency bounds the number of channels fetched in parallel.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(f *Fetcher) {
		if lg != nil {
			f.lg = lg
		}
	}
}

// NewFetcher returns a Fetcher authenticated by ts. apiOpts are passed to the
// API client, e.g. to point it at a different endpoint.
func NewFetcher(ctx context.Context, ts oauth2.TokenSource, store Store, apiOpts []option.ClientOption, opts ...Option) (*Fetcher, error) {
	svc, err := yt.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, apiOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}
	f := &Fetcher{
		svc:         svc,
		store:       store,
		concurrency: defaultConcurrency,
		lg:          slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchSubscribedChannels lists the caller's subscriptions and upserts them.
// Only the first page is read.
func (f *Fetcher) FetchSubscribedChannels(ctx context.Context) ([]models.Channel, error) {
	resp, err := f.svc.Subscriptions.List([]string{"snippet"}).
		Mine(true).
		MaxResults(subscriptionsPageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	f.lg.DebugContext(ctx, "fetched subscriptions", "count", len(resp.Items))

	channels := make([]models.Channel, 0, len(resp.Items))
	for _, item := range resp.Items {
		ch, ok := ChannelFromSubscription(item)
		if !ok {
			continue
		}
		if err := f.store.UpsertChannel(ctx, ch); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// FetchRecentVideos reads the latest uploads of a channel and upserts them.
func (f *Fetcher) FetchRecentVideos(ctx context.Context, channelID string) ([]models.Video, error) {
	resp, err := f.svc.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(videosPerChannel).
		Order("date").
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search videos of %s: %w", channelID, err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v, ok := VideoFromSearchResult(channelID, item)
		if !ok {
			continue
		}
		if err := f.store.UpsertVideo(ctx, v); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// Sync refreshes channels, then the videos of every channel. Channels are
// fetched concurrently up to the configured bound. The first failure cancels
// the remaining fetches and fails the whole sync.
func (f *Fetcher) Sync(ctx context.Context) (*Result, error) {
	start := time.Now()
	channels, err := f.FetchSubscribedChannels(ctx)
	if err != nil {
		return nil, err
	}

	perChannel := make([][]models.Video, len(channels))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.concurrency)
	for i, ch := range channels {
		eg.Go(func() error {
			videos, err := f.FetchRecentVideos(egCtx, ch.ChannelID)
			if err != nil {
				return err
			}
			perChannel[i] = videos
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Channels: channels, Videos: []models.Video{}}
	for _, vv := range perChannel {
		res.Videos = append(res.Videos, vv...)
	}
	f.lg.InfoContext(ctx, "sync complete",
		"channels", len(res.Channels),
		"videos", len(res.Videos),
		"took", time.Since(start))
	return res, nil
}

// Syncer runs a full sync for one user.
type Syncer interface {
	Sync(ctx context.Context) (*Result, error)
}

// SyncerFactory builds a Syncer authenticated with a user's tokens.
type SyncerFactory func(ctx context.Context, tokens models.TokenInfo) (Syncer, error)

// TokenSourceFunc turns stored tokens into a refreshing token source.
type TokenSourceFunc func(ctx context.Context, tokens models.TokenInfo) oauth2.TokenSource

// NewSyncerFactory returns a factory producing Fetchers over store.
func NewSyncerFactory(tsFn TokenSourceFunc, store Store, apiOpts []option.ClientOption, opts ...Option) SyncerFactory {
	return func(ctx context.Context, tokens models.TokenInfo) (Syncer, error) {
		f, err := NewFetcher(ctx, tsFn(ctx, tokens), store, apiOpts, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}
