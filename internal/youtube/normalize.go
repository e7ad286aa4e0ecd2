package youtube

import (
	"time"

	yt "google.golang.org/api/youtube/v3"

	"yt-mcp/internal/models"
)

// ChannelFromSubscription maps a subscription resource to a Channel. It
// reports false when the item carries no channel id.
func ChannelFromSubscription(item *yt.Subscription) (models.Channel, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.ChannelId == "" {
		return models.Channel{}, false
	}
	sn := item.Snippet
	return models.Channel{
		ChannelID:       sn.ResourceId.ChannelId,
		Title:           sn.Title,
		Description:     sn.Description,
		Thumbnail:       defaultThumbnail(sn.Thumbnails),
		SubscribedSince: parseTime(sn.PublishedAt),
	}, true
}

// VideoFromSearchResult maps a search result to a Video of channelID. It
// reports false for results that are not videos.
func VideoFromSearchResult(channelID string, item *yt.SearchResult) (models.Video, bool) {
	if item == nil || item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
		return models.Video{}, false
	}
	sn := item.Snippet
	return models.Video{
		VideoID:     item.Id.VideoId,
		ChannelID:   channelID,
		Title:       sn.Title,
		Description: sn.Description,
		Thumbnail:   defaultThumbnail(sn.Thumbnails),
		PublishedAt: parseTime(sn.PublishedAt),
	}, true
}

func defaultThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil || t.Default == nil {
		return ""
	}
	return t.Default.Url
}

// parseTime reads an RFC 3339 timestamp; malformed input yields the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
