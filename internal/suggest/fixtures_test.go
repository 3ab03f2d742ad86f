package suggest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/route"
)

var errBackendDown = errors.New("backend down")

// fakeSearcher answers from a fixed table and records every query.
type fakeSearcher struct {
	mu      sync.Mutex
	answers map[string][]catalog.Book
	fail    map[string]bool
	calls   []string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		answers: map[string][]catalog.Book{},
		fail:    map[string]bool{},
	}
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if f.fail[query] {
		return nil, &catalog.LookupError{Op: "search", Query: query, Err: errBackendDown}
	}
	return f.answers[query], nil
}

func (f *fakeSearcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func sampleBooks(n int) []catalog.Book {
	out := make([]catalog.Book, n)
	for i := range out {
		out[i] = catalog.Book{
			ID:             100 + i,
			Title:          fmt.Sprintf("Book %d", i),
			Author:         catalog.Author{Name: fmt.Sprintf("Author %d", i)},
			Price:          float64(100 * (i + 1)),
			CoverImagePath: fmt.Sprintf("covers/%d.jpg", i),
		}
	}
	return out
}

var foo = catalog.Book{ID: 7, Title: "Foo", Author: catalog.Author{Name: "Bar"}, Price: 500, CoverImagePath: "x.jpg"}

// typeQuery applies a query and runs the lookup it issued, if any.
func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	m, cmd := m.SetQuery(q)
	if cmd == nil {
		return m
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m
}

// navigation runs cmd and returns the route it requests.
func navigation(t *testing.T, cmd tea.Cmd) route.Route {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(NavigateMsg)
	require.True(t, ok, "expected a NavigateMsg")
	return msg.Route
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
