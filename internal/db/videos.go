package db

import (
	"context"
	"fmt"

	"yt-mcp/internal/models"
)

// UpsertVideo inserts a video or overwrites the fields of the one with the
// same video ID.
func (s *Store) UpsertVideo(ctx context.Context, v models.Video) error {
	query := `
		INSERT INTO videos (video_id, channel_id, title, description, thumbnail, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			thumbnail = EXCLUDED.thumbnail,
			published_at = EXCLUDED.published_at,
			updated_at = NOW()
	`
	_, err := s.db.ExecContext(ctx, query, v.VideoID, v.ChannelID, v.Title, v.Description, v.Thumbnail, v.PublishedAt)
	if err != nil {
		return fmt.Errorf("upsert video %s: %w", v.VideoID, err)
	}
	return nil
}

// RecentVideos returns at most limit videos, newest first.
func (s *Store) RecentVideos(ctx context.Context, limit int) ([]models.Video, error) {
	query := `
		SELECT video_id, channel_id, title, description, thumbnail, published_at
		FROM videos
		ORDER BY published_at DESC
		LIMIT $1
	`
	var videos []models.Video
	if err := s.db.SelectContext(ctx, &videos, query, limit); err != nil {
		return nil, fmt.Errorf("recent videos: %w", err)
	}
	return videos, nil
}

// CountVideos returns the size of the videos collection.
func (s *Store) CountVideos(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM videos"); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return n, nil
}
