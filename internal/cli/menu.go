package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"

	"yt-mcp/internal/mcp"
)

const (
	actionExit = "exit"

	// DefaultMenuLimit is the suggested number of videos in the menu.
	DefaultMenuLimit = 10
)

// Querier reads namespaces. mcpclient.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, ns string, q mcp.Query) (json.RawMessage, error)
}

// Menu is the interactive namespace browser.
type Menu struct {
	client Querier
	out    io.Writer
}

func NewMenu(client Querier, out io.Writer) *Menu {
	return &Menu{client: client, out: out}
}

// Run loops until the user exits or aborts a prompt.
func (m *Menu) Run(ctx context.Context) error {
	for {
		var action string
		err := huh.NewSelect[string]().
			Title("What would you like to do?").
			Options(
				huh.NewOption("View subscribed channels", mcp.NamespaceChannels),
				huh.NewOption("View recent videos", mcp.NamespaceRecentVideos),
				huh.NewOption("View categories", mcp.NamespaceCategories),
				huh.NewOption("View stats", mcp.NamespaceStats),
				huh.NewOption("Exit", actionExit),
			).
			Value(&action).
			Run()
		if err != nil {
			return quietAbort(err)
		}
		if action == actionExit {
			return nil
		}

		var q mcp.Query
		if action == mcp.NamespaceRecentVideos {
			limit := strconv.Itoa(DefaultMenuLimit)
			err := huh.NewInput().
				Title("How many videos would you like to see?").
				Value(&limit).
				Validate(valPositiveInt).
				Run()
			if err != nil {
				return quietAbort(err)
			}
			q = mcp.Query{"limit": limit}
		}

		m.Show(ctx, action, q)

		again := true
		err = huh.NewConfirm().
			Title("Would you like to make another query?").
			Value(&again).
			Run()
		if err != nil {
			return quietAbort(err)
		}
		if !again {
			return nil
		}
	}
}

// Show queries ns and prints it. Query failures are printed, not returned,
// so the menu keeps running.
func (m *Menu) Show(ctx context.Context, ns string, q mcp.Query) {
	data, err := m.client.Query(ctx, ns, q)
	if err != nil {
		fmt.Fprintln(m.out, ErrorLine(err))
		return
	}
	s, err := Render(ns, data)
	if err != nil {
		fmt.Fprintln(m.out, ErrorLine(err))
		return
	}
	fmt.Fprintln(m.out, s)
}

func valPositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func quietAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
