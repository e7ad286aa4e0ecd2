package models

import "time"

// Video is a recent upload of a subscribed channel.
type Video struct {
	VideoID     string    `db:"video_id" json:"videoId"`
	ChannelID   string    `db:"channel_id" json:"channelId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Thumbnail   string    `db:"thumbnail" json:"thumbnail"`
	PublishedAt time.Time `db:"published_at" json:"publishedAt"`
}
