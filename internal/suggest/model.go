// Package suggest implements the incremental search box: typing updates a
// live query, qualifying queries are looked up remotely, and the freshest
// hits are shown in a floating panel that can open a book or the full
// results page.
package suggest

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/route"
)

// Options configures a Model. The zero value is usable but renders an
// unstyled panel, uses English labels and never remembers books.
type Options struct {
	Placeholder string
	AssetBase   string
	PanelMargin int
	Timeout     time.Duration
	Labels      *Labels
	Styles      *Styles
	Log         logr.Logger
	// Index, when set, remembers every committed book for the detail page.
	Index *catalog.Index
}

// Model is the search box component. It composes the query tracker, the
// fetcher and the presenter and is driven by the host's Update loop.
type Model struct {
	input     textinput.Model
	tracker   *Tracker
	fetcher   *Fetcher
	presenter *Presenter
	index     *catalog.Index
	log       logr.Logger
}

// New creates a focused search box backed by searcher.
func New(searcher catalog.Searcher, opts Options) Model {
	labels := DefaultLabels()
	if opts.Labels != nil {
		labels = *opts.Labels
	}
	styles := PlainStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "🔍 "
	ti.Focus()

	return Model{
		input:     ti,
		tracker:   &Tracker{},
		fetcher:   NewFetcher(searcher, opts.Timeout, log),
		presenter: NewPresenter(opts.AssetBase, opts.PanelMargin, labels, styles),
		index:     opts.Index,
		log:       log,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Query returns the live query.
func (m Model) Query() string {
	return m.tracker.Query()
}

// Visible reports whether the suggestion panel is shown.
func (m Model) Visible() bool {
	return m.presenter.Visible()
}

// Results returns the live, capped result set.
func (m Model) Results() []catalog.Book {
	return m.presenter.Items()
}

// Highlighted returns what enter would do right now.
func (m Model) Highlighted() Action {
	return m.presenter.Highlighted()
}

// AnchorWidth returns the last measured input width.
func (m Model) AnchorWidth() int {
	return m.tracker.AnchorWidth()
}

// MeasureAnchor records the rendered width of the input. The host calls it
// when it lays the input out; the panel is sized from it.
func (m Model) MeasureAnchor(width int) Model {
	m.tracker.MeasureAnchor(width)
	m.input.SetWidth(width)
	return m
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus from the input.
func (m *Model) Blur() {
	m.input.Blur()
}

// SetQuery applies a raw input change. Short queries clear and hide the
// panel without a remote call; longer ones return the lookup command.
func (m Model) SetQuery(q string) (Model, tea.Cmd) {
	if m.input.Value() != q {
		m.input.SetValue(q)
	}
	token := m.tracker.SetQuery(q)
	if !Eligible(q) {
		m.presenter.Clear()
		return m, nil
	}
	return m, m.fetcher.Lookup(q, token)
}

// Submit navigates to the full results for whatever the query holds, even
// when it is too short to have been looked up.
func (m Model) Submit() (Model, tea.Cmd) {
	return m.navigate(route.ForQuery(m.tracker.Query()))
}

// Activate performs the highlighted row, or submits when nothing is
// highlighted.
func (m Model) Activate() (Model, tea.Cmd) {
	action := m.presenter.Highlighted()
	switch action.Kind {
	case OpenBook:
		return m.navigate(route.ForBook(action.Book.ID))
	default:
		return m.Submit()
	}
}

// navigate hides the panel, clears the query and emits the request.
func (m Model) navigate(r route.Route) (Model, tea.Cmd) {
	m.presenter.Hide()
	m.tracker.Reset()
	m.input.SetValue("")
	m.log.V(1).Info("navigate", "route", r.String())
	return m, func() tea.Msg { return NavigateMsg{Route: r} }
}

// Update handles key presses and lookup results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultsMsg:
		books, outcome := m.fetcher.Resolve(msg, m.tracker.Token())
		if outcome != Committed {
			return m, nil
		}
		if len(books) == 0 {
			// An empty answer is still the live answer: nothing to show.
			m.presenter.Clear()
			return m, nil
		}
		m.presenter.Show(books)
		if m.index != nil {
			m.index.Remember(books...)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return m.Activate()
		case "down", "ctrl+n":
			m.presenter.MoveDown()
			return m, nil
		case "up", "ctrl+p":
			m.presenter.MoveUp()
			return m, nil
		case "esc":
			if !m.presenter.ClearHighlight() {
				m.presenter.Hide()
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		var lookup tea.Cmd
		m, lookup = m.SetQuery(after)
		return m, tea.Batch(cmd, lookup)
	}
	return m, cmd
}

// View renders the input line. The panel is rendered separately by
// PanelLines so the host can float it over the page.
func (m Model) View() string {
	return m.input.View()
}

// PanelLines renders the floating panel, or nil while it is hidden.
func (m Model) PanelLines() []string {
	return m.presenter.Lines(m.tracker.AnchorWidth())
}
