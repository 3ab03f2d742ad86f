package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/shelf/internal/route"
)

// Maker builds the page for a route.
type Maker interface {
	Make(r route.Route, width, height int) (ChildModel, tea.Cmd)
}

// MakerFunc adapts a function to Maker.
type MakerFunc func(r route.Route, width, height int) (ChildModel, tea.Cmd)

// Make implements Maker.
func (f MakerFunc) Make(r route.Route, width, height int) (ChildModel, tea.Cmd) {
	return f(r, width, height)
}
