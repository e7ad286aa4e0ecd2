package agent

import (
	"encoding/json"
	"fmt"
)

const systemTemplate = `
You are a YouTube subscription assistant.
Here is the user's current YouTube world:

- Subscribed Channels: %s
- Recent Videos: %s
- Personal Analytics: %s

Based on this, answer user questions in a helpful tone.
`

// SystemPrompt renders the context block sent ahead of the user's
// question. Channel and video arrays are cut to their first five entries.
func SystemPrompt(channels, videos, stats json.RawMessage) (string, error) {
	ch, err := head(channels, contextItems)
	if err != nil {
		return "", fmt.Errorf("channels: %w", err)
	}
	vs, err := head(videos, contextItems)
	if err != nil {
		return "", fmt.Errorf("recent videos: %w", err)
	}
	st, err := compact(stats)
	if err != nil {
		return "", fmt.Errorf("stats: %w", err)
	}
	return fmt.Sprintf(systemTemplate, ch, vs, st), nil
}

func head(raw json.RawMessage, n int) (string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	if len(items) > n {
		items = items[:n]
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func compact(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
