package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger at the configured level and installs it as
// the default.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lg := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
	slog.SetDefault(lg)
	return lg
}
