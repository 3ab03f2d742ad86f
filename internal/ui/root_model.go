package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/shelf/internal/route"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// RootModel owns the page stack. The home page sits at the bottom; every
// NavigateMsg pushes the page built for its route, BackMsg pops.
type RootModel struct {
	current ChildModel
	stack   []ChildModel
	maker   Maker
	log     logr.Logger

	width  int
	height int

	startup  []tea.Cmd
	quitting bool
}

// NewRootModel creates a root showing home.
func NewRootModel(home ChildModel, maker Maker, log logr.Logger) *RootModel {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &RootModel{
		current: home,
		maker:   maker,
		log:     log,
		width:   80,
		height:  24,
	}
}

// Init initializes the current page and runs the startup commands.
func (m *RootModel) Init() tea.Cmd {
	cmds := append([]tea.Cmd(nil), m.startup...)
	if m.current != nil {
		cmds = append(cmds, m.current.Init())
	}
	return tea.Batch(cmds...)
}

// OnStart queues cmd to run when the program starts.
func (m *RootModel) OnStart(cmd tea.Cmd) {
	if cmd != nil {
		m.startup = append(m.startup, cmd)
	}
}

// Update handles global messages and routes the rest to the current page.
func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if sized, ok := m.current.(ModelWithSize); ok {
			sized.SetSize(m.width, m.height)
		}
		return m, nil

	case tea.KeyPressMsg:
		// Check for Ctrl+C - handle both string form and raw control character (0x03)
		if msg.String() == "ctrl+c" || msg.Code == 0x03 {
			m.quitting = true
			return m, tea.Quit
		}

	case suggest.NavigateMsg:
		return m, m.Navigate(msg.Route)

	case BackMsg:
		if !m.NavigateBack() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// Navigate opens the page for r. The home route unwinds the stack instead
// of pushing a second home page.
func (m *RootModel) Navigate(r route.Route) tea.Cmd {
	m.log.V(1).Info("route", "to", r.String(), "depth", len(m.stack))
	if r.Kind == route.Home {
		for m.NavigateBack() {
		}
		return nil
	}
	if m.maker == nil {
		return nil
	}
	page, cmd := m.maker.Make(r, m.width, m.height)
	return tea.Batch(m.NavigateTo(page), cmd)
}

// NavigateTo pushes the current page and shows page.
func (m *RootModel) NavigateTo(page ChildModel) tea.Cmd {
	if m.current != nil {
		if focusable, ok := m.current.(ModelWithFocus); ok {
			focusable.Blur()
		}
		m.stack = append(m.stack, m.current)
	}
	m.current = page

	var cmds []tea.Cmd
	if m.current != nil {
		if sized, ok := m.current.(ModelWithSize); ok {
			sized.SetSize(m.width, m.height)
		}
		cmds = append(cmds, m.current.Init())
		if focusable, ok := m.current.(ModelWithFocus); ok {
			cmds = append(cmds, focusable.Focus())
		}
	}
	return tea.Batch(cmds...)
}

// NavigateBack returns to the previous page. It reports false on the
// bottom page.
func (m *RootModel) NavigateBack() bool {
	if len(m.stack) == 0 {
		return false
	}
	if focusable, ok := m.current.(ModelWithFocus); ok {
		focusable.Blur()
	}

	m.current = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	if sized, ok := m.current.(ModelWithSize); ok {
		sized.SetSize(m.width, m.height)
	}
	if focusable, ok := m.current.(ModelWithFocus); ok {
		focusable.Focus()
	}
	return true
}

// CanNavigateBack reports whether a previous page exists.
func (m *RootModel) CanNavigateBack() bool {
	return len(m.stack) > 0
}

// Current returns the page being shown.
func (m *RootModel) Current() ChildModel {
	return m.current
}

// Depth returns how many pages sit below the current one.
func (m *RootModel) Depth() int {
	return len(m.stack)
}

// Render returns one frame of the current page.
func (m *RootModel) Render() string {
	if m.quitting || m.current == nil {
		return ""
	}
	return strings.TrimRight(m.current.View(), "\n")
}

// View renders the current page on the alternate screen.
func (m *RootModel) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}
