package ui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// DetailPage shows one book. Books are looked up in the index of books
// seen in earlier results; the catalog API has no single-book endpoint
// wired here.
type DetailPage struct {
	id        int
	book      catalog.Book
	found     bool
	assetBase string
	currency  string
	styles    Styles
	width     int
}

// NewDetailPage resolves id against index.
func NewDetailPage(id int, index *catalog.Index, assetBase, currency string, styles Styles) *DetailPage {
	p := &DetailPage{id: id, assetBase: assetBase, currency: currency, styles: styles, width: 80}
	if index != nil {
		p.book, p.found = index.Lookup(id)
	}
	return p
}

// Title implements ModelWithTitle.
func (p *DetailPage) Title() string {
	if p.found {
		return p.book.Title
	}
	return "book " + strconv.Itoa(p.id)
}

// Found reports whether the book was in the index.
func (p *DetailPage) Found() bool {
	return p.found
}

// SetSize implements ModelWithSize.
func (p *DetailPage) SetSize(width, _ int) {
	p.width = width
}

func (p *DetailPage) Init() tea.Cmd { return nil }

// Update goes back on esc.
func (p *DetailPage) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc", "backspace", "q", "enter":
			return p, Back
		}
	}
	return p, nil
}

// View renders the book card.
func (p *DetailPage) View() string {
	lines := []string{titleBar(p.styles, p.Title(), p.width), ""}
	if !p.found {
		lines = append(lines,
			"  "+p.styles.Error.Render("Book "+strconv.Itoa(p.id)+" is not loaded."),
			"  "+p.styles.Hint.Render("Search for it first, then open it from the results."),
		)
	} else {
		b := p.book
		lines = append(lines,
			"  "+p.styles.Heading.Render(b.Title),
			"  "+p.styles.Text.Render("by "+b.Author.Name),
			"  "+p.styles.Text.Render(suggest.FormatPrice(b.Price)+" "+p.currency),
		)
		if cover := catalog.CoverURL(p.assetBase, b.CoverImagePath); cover != "" {
			lines = append(lines, "  "+p.styles.Muted.Render("cover: "+cover))
		}
	}
	lines = append(lines, "", "  "+p.styles.Hint.Render("esc back"))
	return strings.Join(lines, "\n")
}
