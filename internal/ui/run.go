package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Run starts the interactive program. Width/height of 0 auto-detect the
// terminal size.
func Run(ctx context.Context, app *RootModel, width, height int, opts ...tea.ProgramOption) error {
	w, h := ResolveSize(width, height)
	opts = append(opts, tea.WithContext(ctx), tea.WithWindowSize(w, h))
	_, err := tea.NewProgram(app, opts...).Run()
	return err
}

// ResolveSize fills missing dimensions from the terminal, then defaults.
func ResolveSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// Snapshot renders a single frame: the home page at the given size with
// query typed in and its suggestion lookup, if any, already answered.
func Snapshot(app *RootModel, query string, width, height int) string {
	app.Update(tea.WindowSizeMsg{Width: width, Height: height})
	if home, ok := app.Current().(*HomePage); ok && query != "" {
		if cmd := home.SetQuery(query); cmd != nil {
			app.Update(cmd())
		}
	}
	return app.Render()
}
