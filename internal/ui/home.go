package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/shelf/internal/suggest"
)

const (
	// searchRow is the screen row of the search box on the home page.
	searchRow = 2
	// searchCol is where the search box, and the panel below it, start.
	searchCol    = 2
	maxAnchor    = 56
	minAnchor    = 10
	homeHintText = "type 3+ letters for suggestions · ↑/↓ select · enter open · esc close · ctrl+c quit"
)

// HomePage is the storefront front page: a title bar, the search box with
// its suggestion panel floating over the page body.
type HomePage struct {
	search   suggest.Model
	styles   Styles
	appName  string
	width    int
	height   int
	measured bool
}

// NewHomePage wraps a search box.
func NewHomePage(search suggest.Model, styles Styles, appName string) *HomePage {
	return &HomePage{search: search, styles: styles, appName: appName, width: 80, height: 24}
}

// Init starts the input cursor.
func (p *HomePage) Init() tea.Cmd {
	return p.search.Init()
}

// Title implements ModelWithTitle.
func (p *HomePage) Title() string {
	return "home"
}

// SetSize lays the page out. The search box is measured on the first
// layout only; later resizes keep the panel width.
func (p *HomePage) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.measured || width <= 0 {
		return
	}
	p.search = p.search.MeasureAnchor(anchorWidthFor(width))
	p.measured = true
}

func anchorWidthFor(screen int) int {
	w := screen - 2*searchCol - 3
	if w > maxAnchor {
		w = maxAnchor
	}
	if w < minAnchor {
		w = minAnchor
	}
	return w
}

// Focus implements ModelWithFocus.
func (p *HomePage) Focus() tea.Cmd {
	return p.search.Focus()
}

// Blur implements ModelWithFocus.
func (p *HomePage) Blur() {
	p.search.Blur()
}

// Search returns the search box.
func (p *HomePage) Search() suggest.Model {
	return p.search
}

// SetQuery replaces the search text as if it had been typed.
func (p *HomePage) SetQuery(q string) tea.Cmd {
	var cmd tea.Cmd
	p.search, cmd = p.search.SetQuery(q)
	return cmd
}

// Update forwards everything to the search box.
func (p *HomePage) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	return p, cmd
}

// View draws the page then floats the suggestion panel directly below the
// search box.
func (p *HomePage) View() string {
	lines := []string{
		titleBar(p.styles, p.appName, p.width),
		"",
		strings.Repeat(" ", searchCol) + p.search.View(),
		"",
		strings.Repeat(" ", searchCol) + p.styles.Hint.Render(runewidth.Truncate(homeHintText, max(p.width-searchCol, 0), "…")),
		"",
		strings.Repeat(" ", searchCol) + p.styles.Muted.Render("Featured books appear here."),
	}
	for len(lines) < p.height {
		lines = append(lines, "")
	}
	view := strings.Join(lines, "\n")
	return spliceOverlay(view, p.search.PanelLines(), searchCol, searchRow+1)
}

// titleBar renders a full-width bar with the application name.
func titleBar(styles Styles, name string, width int) string {
	text := " " + name + " "
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return styles.TitleBar.Render(runewidth.Truncate(text, max(width, 1), ""))
}
