// Package cli renders MCP namespace payloads for the terminal and drives
// the interactive menu.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"yt-mcp/internal/mcp"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

const maxCell = 60

// Render formats the payload of ns. Namespaces without a table layout are
// printed as indented JSON.
func Render(ns string, data json.RawMessage) (string, error) {
	switch ns {
	case mcp.NamespaceChannels:
		return renderChannels(data)
	case mcp.NamespaceRecentVideos:
		return renderVideos(data)
	case mcp.NamespaceCategories:
		return renderCategories(data)
	case mcp.NamespaceStats:
		return renderStats(data)
	default:
		return Indent(data)
	}
}

// Indent pretty prints raw JSON.
func Indent(data json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ErrorLine formats an error for the terminal.
func ErrorLine(err error) string {
	return errorStyle.Render("Error:") + " " + err.Error()
}

func renderChannels(data json.RawMessage) (string, error) {
	var channels []mcp.ChannelResource
	if err := json.Unmarshal(data, &channels); err != nil {
		return "", fmt.Errorf("decode channels: %w", err)
	}
	rows := make([][]string, len(channels))
	for i, ch := range channels {
		rows[i] = []string{ch.Title, ch.ID, truncate(ch.Description), date(ch.SubscribedSince)}
	}
	return section("Subscribed Channels", len(channels),
		newTable([]string{"Title", "Channel ID", "Description", "Subscribed"}, rows)), nil
}

func renderVideos(data json.RawMessage) (string, error) {
	var videos []mcp.VideoResource
	if err := json.Unmarshal(data, &videos); err != nil {
		return "", fmt.Errorf("decode videos: %w", err)
	}
	rows := make([][]string, len(videos))
	for i, v := range videos {
		rows[i] = []string{truncate(v.Title), v.ID, v.ChannelID, date(v.PublishedAt)}
	}
	return section("Recent Videos", len(videos),
		newTable([]string{"Title", "Video ID", "Channel ID", "Published"}, rows)), nil
}

func renderCategories(data json.RawMessage) (string, error) {
	var cats []mcp.CategoryResource
	if err := json.Unmarshal(data, &cats); err != nil {
		return "", fmt.Errorf("decode categories: %w", err)
	}
	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = []string{c.Category, strings.Join(c.Channels, ", ")}
	}
	return section("Categories", len(cats), newTable([]string{"Category", "Channels"}, rows)), nil
}

func renderStats(data json.RawMessage) (string, error) {
	var st mcp.StatsResource
	if err := json.Unmarshal(data, &st); err != nil {
		return "", fmt.Errorf("decode stats: %w", err)
	}
	rows := [][]string{
		{"Top channels", strings.Join(st.TopChannels, ", ")},
		{"Most watched category", st.MostWatchedCategory},
		{"Time spent", st.TimeSpent},
	}
	return titleStyle.Render("Viewing Stats") + "\n" + newTable([]string{"Metric", "Value"}, rows), nil
}

func section(title string, n int, body string) string {
	if n == 0 {
		return titleStyle.Render(title) + "\n(none)"
	}
	return titleStyle.Render(fmt.Sprintf("%s (%d)", title, n)) + "\n" + body
}

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell-1]) + "…"
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
