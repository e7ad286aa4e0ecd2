package mcp

import (
	"time"

	"yt-mcp/internal/models"
)

// ChannelResource is the wire shape of a channel.
type ChannelResource struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Thumbnail       string    `json:"thumbnail"`
	SubscribedSince time.Time `json:"subscribedSince"`
}

// VideoResource is the wire shape of a video. The description is left out to
// keep the payload small for the agent prompt.
type VideoResource struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channelId"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	PublishedAt time.Time `json:"publishedAt"`
}

// CategoryResource groups channel titles under a category name.
type CategoryResource struct {
	Category string   `json:"category"`
	Channels []string `json:"channels"`
}

// StatsResource is the personal viewing summary.
type StatsResource struct {
	TopChannels         []string `json:"topChannels"`
	MostWatchedCategory string   `json:"mostWatchedCategory"`
	TimeSpent           string   `json:"timeSpent"`
}

// ChannelToResource renames the store's channelId to id.
func ChannelToResource(ch models.Channel) ChannelResource {
	return ChannelResource{
		ID:              ch.ChannelID,
		Title:           ch.Title,
		Description:     ch.Description,
		Thumbnail:       ch.Thumbnail,
		SubscribedSince: ch.SubscribedSince,
	}
}

// VideoToResource renames the store's videoId to id.
func VideoToResource(v models.Video) VideoResource {
	return VideoResource{
		ID:          v.VideoID,
		ChannelID:   v.ChannelID,
		Title:       v.Title,
		Thumbnail:   v.Thumbnail,
		PublishedAt: v.PublishedAt,
	}
}
