package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is a page managed by RootModel. The root routes every message
// it does not handle itself to the current page.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithTitle is implemented by pages that name themselves in the
// title bar.
type ModelWithTitle interface {
	Title() string
}

// ModelWithSize is implemented by pages that lay themselves out.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithFocus is implemented by pages with a focusable input.
type ModelWithFocus interface {
	Focus() tea.Cmd
	Blur()
}

// BackMsg asks the root to return to the previous page.
type BackMsg struct{}

// Back is a command that emits BackMsg.
func Back() tea.Msg {
	return BackMsg{}
}
