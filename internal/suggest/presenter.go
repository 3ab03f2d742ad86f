package suggest

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/shelf/internal/catalog"
)

// minPanelWidth keeps the panel usable before the anchor has been measured.
const minPanelWidth = 12

// Labels holds the user-facing strings of the panel.
type Labels struct {
	NoResults string
	ViewAll   string
	Currency  string
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		NoResults: "No results",
		ViewAll:   "View all results",
		Currency:  "RSD",
	}
}

// Styles controls how the panel is drawn.
type Styles struct {
	Border      lipgloss.Style
	Title       lipgloss.Style
	Meta        lipgloss.Style
	Cover       lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
	Action      lipgloss.Style
}

// PlainStyles draws the panel without any escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Border:      plain,
		Title:       plain,
		Meta:        plain,
		Cover:       plain,
		Selected:    plain,
		Placeholder: plain,
		Action:      plain,
	}
}

// ActionKind tells the caller what activating the highlighted row does.
type ActionKind int

const (
	// NoAction means nothing is highlighted.
	NoAction ActionKind = iota
	// OpenBook opens the detail page of Action.Book.
	OpenBook
	// ViewAll opens the full results page for the live query.
	ViewAll
)

// Action is the highlighted row resolved to what it does.
type Action struct {
	Kind ActionKind
	Book catalog.Book
}

// Presenter holds the live result set and renders the floating panel.
type Presenter struct {
	items     []catalog.Book
	visible   bool
	cursor    int // -1 when nothing is highlighted
	margin    int
	assetBase string
	labels    Labels
	styles    Styles
}

// NewPresenter creates a hidden presenter.
func NewPresenter(assetBase string, margin int, labels Labels, styles Styles) *Presenter {
	if margin < 0 {
		margin = 0
	}
	return &Presenter{
		cursor:    -1,
		margin:    margin,
		assetBase: assetBase,
		labels:    labels,
		styles:    styles,
	}
}

// Show replaces the result set and makes the panel visible.
func (p *Presenter) Show(items []catalog.Book) {
	p.items = items
	p.visible = true
	p.cursor = -1
}

// Hide hides the panel but keeps the result set.
func (p *Presenter) Hide() {
	p.visible = false
	p.cursor = -1
}

// Clear empties the result set and hides the panel.
func (p *Presenter) Clear() {
	p.items = nil
	p.Hide()
}

// Visible reports whether the panel is shown.
func (p *Presenter) Visible() bool {
	return p.visible
}

// Items returns the live result set.
func (p *Presenter) Items() []catalog.Book {
	return p.items
}

// Cursor returns the highlighted row, or -1.
func (p *Presenter) Cursor() int {
	return p.cursor
}

// rows counts the selectable rows: every item plus the trailing view-all
// action. The no-results placeholder is not selectable.
func (p *Presenter) rows() int {
	if len(p.items) == 0 {
		return 0
	}
	return len(p.items) + 1
}

// MoveDown highlights the next row, wrapping to the first.
func (p *Presenter) MoveDown() {
	n := p.rows()
	if !p.visible || n == 0 {
		return
	}
	p.cursor = (p.cursor + 1) % n
}

// MoveUp highlights the previous row, wrapping to the last.
func (p *Presenter) MoveUp() {
	n := p.rows()
	if !p.visible || n == 0 {
		return
	}
	if p.cursor <= 0 {
		p.cursor = n - 1
		return
	}
	p.cursor--
}

// ClearHighlight drops the highlight and reports whether there was one.
func (p *Presenter) ClearHighlight() bool {
	had := p.cursor >= 0
	p.cursor = -1
	return had
}

// Highlighted resolves the highlighted row.
func (p *Presenter) Highlighted() Action {
	if !p.visible || p.cursor < 0 || p.cursor >= p.rows() {
		return Action{}
	}
	if p.cursor == len(p.items) {
		return Action{Kind: ViewAll}
	}
	return Action{Kind: OpenBook, Book: p.items[p.cursor]}
}

// Width returns the outer panel width for an anchor of the given width.
func (p *Presenter) Width(anchorWidth int) int {
	w := anchorWidth + p.margin
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

// Lines renders the panel as equal-width lines ready to be spliced over
// the page below the anchor. It returns nil while hidden.
func (p *Presenter) Lines(anchorWidth int) []string {
	if !p.visible {
		return nil
	}
	width := p.Width(anchorWidth)
	inner := width - 2

	var body []string
	if len(p.items) == 0 {
		body = append(body, p.cell(p.styles.Placeholder, "  "+p.labels.NoResults, inner))
	} else {
		for i, b := range p.items {
			body = append(body, p.itemLines(b, i == p.cursor, inner)...)
		}
		body = append(body, p.cell(p.styles.Border, strings.Repeat("─", inner), inner))
		body = append(body, p.rowCell(p.styles.Action, p.labels.ViewAll, p.cursor == len(p.items), inner))
	}

	b := p.styles.Border
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, b.Render("╭"+strings.Repeat("─", inner)+"╮"))
	for _, l := range body {
		lines = append(lines, b.Render("│")+l+b.Render("│"))
	}
	lines = append(lines, b.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return lines
}

// View renders the panel as a single string.
func (p *Presenter) View(anchorWidth int) string {
	return strings.Join(p.Lines(anchorWidth), "\n")
}

func (p *Presenter) itemLines(b catalog.Book, selected bool, inner int) []string {
	meta := b.Author.Name + " - " + FormatPrice(b.Price) + " " + p.labels.Currency
	lines := []string{
		p.rowCell(p.styles.Title, b.Title, selected, inner),
		p.cell(p.styles.Meta, "  "+strings.TrimSpace(meta), inner),
	}
	if cover := catalog.CoverURL(p.assetBase, b.CoverImagePath); cover != "" {
		lines = append(lines, p.cell(p.styles.Cover, "  "+cover, inner))
	}
	return lines
}

func (p *Presenter) rowCell(style lipgloss.Style, text string, selected bool, inner int) string {
	if selected {
		return p.cell(p.styles.Selected, "▸ "+text, inner)
	}
	return p.cell(style, "  "+text, inner)
}

// cell truncates plain text to width cells, pads it, then styles it.
func (p *Presenter) cell(style lipgloss.Style, text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = runewidth.Truncate(text, width, "…")
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return style.Render(text)
}

// FormatPrice prints a price without trailing zeros: 500, 1299.5.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
