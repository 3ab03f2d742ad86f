// Package route builds and parses the storefront's navigation targets.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	detailPrefix = "/books/view-book/"
	searchPath   = "/books/search"
	homePath     = "/"
)

// ErrUnknownRoute is returned by Parse for paths no page serves.
var ErrUnknownRoute = errors.New("unknown route")

// Kind identifies which page a Route targets.
type Kind int

const (
	// Home is the landing page with the search box.
	Home Kind = iota
	// Detail shows a single book.
	Detail
	// SearchResults lists every hit for a query.
	SearchResults
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Detail:
		return "detail"
	case SearchResults:
		return "search"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Route is a typed navigation target.
type Route struct {
	Kind   Kind
	BookID int    // Detail only
	Query  string // SearchResults only, decoded
}

// ForBook returns the detail route for a book id.
func ForBook(id int) Route {
	return Route{Kind: Detail, BookID: id}
}

// ForQuery returns the full-results route for free text. The text is kept
// as typed, short and empty queries included.
func ForQuery(query string) Route {
	return Route{Kind: SearchResults, Query: query}
}

// String renders the route path. The query text is percent-encoded with
// spaces as %20, the way browsers encode a URI component.
func (r Route) String() string {
	switch r.Kind {
	case Detail:
		return detailPrefix + strconv.Itoa(r.BookID)
	case SearchResults:
		return searchPath + "?query=" + escapeComponent(r.Query)
	default:
		return homePath
	}
}

func escapeComponent(s string) string {
	// QueryEscape already turns a literal '+' into %2B.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Parse converts a path produced by Route.String back into a Route.
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", raw, err)
	}
	switch {
	case u.Path == "" || u.Path == homePath:
		return Route{Kind: Home}, nil
	case strings.HasPrefix(u.Path, detailPrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(u.Path, detailPrefix))
		if err != nil {
			return Route{}, fmt.Errorf("parse route %q: invalid book id: %w", raw, err)
		}
		return ForBook(id), nil
	case u.Path == searchPath:
		q, err := url.ParseQuery(u.RawQuery)
		if err != nil {
			return Route{}, fmt.Errorf("parse route %q: %w", raw, err)
		}
		return ForQuery(q.Get("query")), nil
	default:
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
	}
}
