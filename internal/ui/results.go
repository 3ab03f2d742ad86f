package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/route"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// searchLoadedMsg carries the full, uncapped result list of a results page.
type searchLoadedMsg struct {
	Query string
	Books []catalog.Book
	Err   error
}

// ResultsPage lists every hit for a query.
type ResultsPage struct {
	query    string
	searcher catalog.Searcher
	index    *catalog.Index
	timeout  time.Duration
	currency string
	styles   Styles
	log      logr.Logger

	books   []catalog.Book
	err     error
	loading bool
	cursor  int
	offset  int

	width  int
	height int
}

// NewResultsPage creates the page; Init issues the search.
func NewResultsPage(query string, searcher catalog.Searcher, index *catalog.Index, timeout time.Duration, currency string, styles Styles, log logr.Logger) *ResultsPage {
	return &ResultsPage{
		query:    query,
		searcher: searcher,
		index:    index,
		timeout:  timeout,
		currency: currency,
		styles:   styles,
		log:      log,
		loading:  strings.TrimSpace(query) != "",
		width:    80,
		height:   24,
	}
}

// Title implements ModelWithTitle.
func (p *ResultsPage) Title() string {
	return "results for " + p.query
}

// SetSize implements ModelWithSize.
func (p *ResultsPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.scroll()
}

// Books returns the loaded hits.
func (p *ResultsPage) Books() []catalog.Book {
	return p.books
}

// Err returns the lookup error, if any.
func (p *ResultsPage) Err() error {
	return p.err
}

// Init searches for the page's query. Short queries are searched too; the
// length gate only applies to suggestions.
func (p *ResultsPage) Init() tea.Cmd {
	if !p.loading || p.searcher == nil {
		p.loading = false
		return nil
	}
	query, searcher, timeout := p.query, p.searcher, p.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		books, err := searcher.Search(ctx, query)
		return searchLoadedMsg{Query: query, Books: books, Err: err}
	}
}

// Update handles the search result and list navigation.
func (p *ResultsPage) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchLoadedMsg:
		if msg.Query != p.query {
			return p, nil
		}
		p.loading = false
		p.books, p.err = msg.Books, msg.Err
		if msg.Err != nil {
			p.log.Error(msg.Err, "search failed", "query", msg.Query)
			return p, nil
		}
		if p.index != nil {
			p.index.Remember(msg.Books...)
		}
		p.cursor, p.offset = 0, 0
		return p, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "down", "j", "ctrl+n":
			if p.cursor < len(p.books)-1 {
				p.cursor++
				p.scroll()
			}
		case "up", "k", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
				p.scroll()
			}
		case "enter":
			if p.cursor < len(p.books) {
				r := route.ForBook(p.books[p.cursor].ID)
				return p, func() tea.Msg { return suggest.NavigateMsg{Route: r} }
			}
		case "esc", "backspace", "q":
			return p, Back
		}
	}
	return p, nil
}

// visibleRows is how many books fit below the header.
func (p *ResultsPage) visibleRows() int {
	rows := (p.height - 4) / 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p *ResultsPage) scroll() {
	rows := p.visibleRows()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
}

// View renders the list.
func (p *ResultsPage) View() string {
	lines := []string{
		titleBar(p.styles, "Results for “"+p.query+"”", p.width),
		"",
	}
	inner := max(p.width-4, 10)
	switch {
	case p.loading:
		lines = append(lines, "  "+p.styles.Hint.Render("Searching…"))
	case p.err != nil:
		lines = append(lines, "  "+p.styles.Error.Render(runewidth.Truncate("Search failed: "+p.err.Error(), inner, "…")))
	case len(p.books) == 0:
		lines = append(lines, "  "+p.styles.Hint.Render("No books match this search."))
	default:
		end := min(p.offset+p.visibleRows(), len(p.books))
		for i := p.offset; i < end; i++ {
			b := p.books[i]
			title := runewidth.Truncate(b.Title, inner-2, "…")
			meta := runewidth.Truncate(fmt.Sprintf("%s - %s %s", b.Author.Name, suggest.FormatPrice(b.Price), p.currency), inner-2, "…")
			if i == p.cursor {
				lines = append(lines, "  "+p.styles.Selected.Render("▸ "+title))
			} else {
				lines = append(lines, "  "+p.styles.Text.Render("  "+title))
			}
			lines = append(lines, "  "+p.styles.Muted.Render("  "+meta))
		}
		lines = append(lines, "", "  "+p.styles.Hint.Render(fmt.Sprintf("%d of %d · enter open · esc back", p.cursor+1, len(p.books))))
	}
	return strings.Join(lines, "\n")
}
