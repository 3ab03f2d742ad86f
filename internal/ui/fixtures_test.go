package ui

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/config"
	"github.com/oakwood-commons/shelf/internal/route"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// mockChild records what the root sends it.
type mockChild struct {
	title       string
	initCalled  bool
	updateCalls int
	lastMsg     tea.Msg
	focused     bool
	width       int
	height      int
}

func newMockChild(title string) *mockChild {
	return &mockChild{title: title}
}

func (m *mockChild) Init() tea.Cmd {
	m.initCalled = true
	return nil
}

func (m *mockChild) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	m.updateCalls++
	m.lastMsg = msg
	return m, nil
}

func (m *mockChild) View() string { return m.title + " view" }
func (m *mockChild) Title() string { return m.title }
func (m *mockChild) SetSize(w, h int) { m.width, m.height = w, h }
func (m *mockChild) Focus() tea.Cmd {
	m.focused = true
	return nil
}

func (m *mockChild) Blur() { m.focused = false }

// recordingMaker builds mock pages and remembers the routes asked for.
type recordingMaker struct {
	routes []route.Route
	pages  []*mockChild
}

func (r *recordingMaker) Make(rt route.Route, w, h int) (ChildModel, tea.Cmd) {
	r.routes = append(r.routes, rt)
	page := newMockChild(rt.String())
	r.pages = append(r.pages, page)
	return page, nil
}

var catalogBooks = []catalog.Book{
	{ID: 1, Title: "The Hobbit", Author: catalog.Author{Name: "J.R.R. Tolkien"}, Price: 1200, CoverImagePath: "hobbit.jpg"},
	{ID: 2, Title: "The Silmarillion", Author: catalog.Author{Name: "J.R.R. Tolkien"}, Price: 800},
	{ID: 3, Title: "Dune", Author: catalog.Author{Name: "Frank Herbert"}, Price: 990.5},
}

var errOffline = errors.New("offline")

// titleSearcher matches books whose title contains the query, case
// insensitively. The query "fail" errors.
var titleSearcher = catalog.SearcherFunc(func(_ context.Context, q string) ([]catalog.Book, error) {
	if q == "fail" {
		return nil, &catalog.LookupError{Op: "search", Query: q, Err: errOffline}
	}
	var out []catalog.Book
	for _, b := range catalogBooks {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(q)) {
			out = append(out, b)
		}
	}
	return out, nil
})

func plainStyles() Styles {
	return NewStyles(Theme{}, true)
}

func newTestApp() *RootModel {
	return NewApp(AppOptions{
		Searcher:    titleSearcher,
		AssetBase:   "http://assets",
		PanelMargin: 2,
		Labels:      suggest.DefaultLabels(),
		Styles:      plainStyles(),
	})
}

// drain runs cmd and feeds every resulting message back into the root,
// skipping cursor blinks and quits.
func drain(app *RootModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(app, c)
		}
	case suggest.NavigateMsg, suggest.ResultsMsg, searchLoadedMsg, BackMsg:
		_, next := app.Update(msg)
		drain(app, next)
	}
}

func configTheme(accent string) config.ThemeConfig {
	return config.ThemeConfig{Accent: config.ColorValue(accent)}
}
