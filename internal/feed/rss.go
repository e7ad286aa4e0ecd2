package feed

import (
	"fmt"
	"net/http"
	"time"

	"github.com/eduncan911/podcast"

	"yt-mcp/internal/models"
)

// WatchURL is the public page of a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GenerateRSS renders recent videos as an RSS 2.0 document.
func GenerateRSS(videos []models.Video, r *http.Request, now time.Time) (string, error) {
	p := podcast.New(
		"Recent videos from my subscriptions",
		baseURL(r)+r.URL.Path,
		"The latest uploads of the YouTube channels I subscribe to.",
		nil, &now,
	)

	for _, v := range videos {
		title := v.Title
		if title == "" {
			title = v.VideoID
		}
		desc := v.Description
		if desc == "" {
			desc = title
		}
		pub := v.PublishedAt
		item := podcast.Item{
			GUID:        v.VideoID,
			Title:       title,
			Link:        WatchURL(v.VideoID),
			Description: desc,
			PubDate:     &pub,
		}
		if v.Thumbnail != "" {
			item.AddImage(v.Thumbnail)
		}
		if _, err := p.AddItem(item); err != nil {
			return "", fmt.Errorf("video %s: %w", v.VideoID, err)
		}
	}

	return p.String(), nil
}
