package db

import (
	"context"
	"fmt"

	"yt-mcp/internal/models"
)

// UpsertChannel inserts a channel or overwrites the fields of the one with
// the same channel ID.
func (s *Store) UpsertChannel(ctx context.Context, ch models.Channel) error {
	query := `
		INSERT INTO channels (channel_id, title, description, thumbnail, subscribed_since)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (channel_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			thumbnail = EXCLUDED.thumbnail,
			subscribed_since = EXCLUDED.subscribed_since,
			updated_at = NOW()
	`
	_, err := s.db.ExecContext(ctx, query, ch.ChannelID, ch.Title, ch.Description, ch.Thumbnail, ch.SubscribedSince)
	if err != nil {
		return fmt.Errorf("upsert channel %s: %w", ch.ChannelID, err)
	}
	return nil
}

// ListChannels returns every cached channel.
func (s *Store) ListChannels(ctx context.Context) ([]models.Channel, error) {
	query := `
		SELECT channel_id, title, description, thumbnail, subscribed_since
		FROM channels
		ORDER BY title
	`
	var channels []models.Channel
	if err := s.db.SelectContext(ctx, &channels, query); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

// CountChannels returns the size of the channels collection.
func (s *Store) CountChannels(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM channels"); err != nil {
		return 0, fmt.Errorf("count channels: %w", err)
	}
	return n, nil
}
