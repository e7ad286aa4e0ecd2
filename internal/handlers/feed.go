package handlers

import (
	"net/http"

	"yt-mcp/internal/feed"
	"yt-mcp/internal/mcp"
)

// GetRSSFeed renders the most recent stored videos as RSS.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	limit := mcp.ParseLimit(mcp.Query{"limit": r.URL.Query().Get("limit")})

	videos, err := h.store.RecentVideos(r.Context(), limit)
	if err != nil {
		h.lg.ErrorContext(r.Context(), "error getting videos", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	rss, err := feed.GenerateRSS(videos, r, h.now())
	if err != nil {
		h.lg.ErrorContext(r.Context(), "error generating RSS", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
