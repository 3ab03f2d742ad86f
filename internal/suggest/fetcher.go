package suggest

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/shelf/internal/catalog"
)

// Outcome says what Resolve decided about a lookup result.
type Outcome int

const (
	// Discarded results belonged to a superseded query.
	Discarded Outcome = iota
	// Committed results replace the live result set.
	Committed
	// Failed lookups leave the live result set untouched.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	default:
		return "discarded"
	}
}

// Fetcher issues remote lookups and decides which results may be shown.
type Fetcher struct {
	searcher catalog.Searcher
	timeout  time.Duration
	log      logr.Logger
}

// NewFetcher creates a fetcher over searcher. A zero timeout leaves request
// deadlines to the searcher itself.
func NewFetcher(searcher catalog.Searcher, timeout time.Duration, log logr.Logger) *Fetcher {
	return &Fetcher{searcher: searcher, timeout: timeout, log: log}
}

// Lookup returns a command that searches for query and reports back as a
// ResultsMsg stamped with token. It returns nil when the query is too short
// to be sent, so callers can never issue a remote call below the gate.
func (f *Fetcher) Lookup(query string, token uint64) tea.Cmd {
	if !Eligible(query) || f.searcher == nil {
		return nil
	}
	searcher := f.searcher
	timeout := f.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		books, err := searcher.Search(ctx, query)
		return ResultsMsg{Token: token, Query: query, Books: books, Err: err}
	}
}

// Resolve checks msg against the live token. Stale messages are dropped,
// failures are logged and dropped, and successful live results come back
// capped to MaxSuggestions in their original order.
func (f *Fetcher) Resolve(msg ResultsMsg, live uint64) ([]catalog.Book, Outcome) {
	if msg.Token != live {
		f.log.V(1).Info("discarding stale suggestions", "query", msg.Query, "token", msg.Token, "live", live)
		return nil, Discarded
	}
	if msg.Err != nil {
		f.log.Error(msg.Err, "suggestion lookup failed", "query", msg.Query, "token", msg.Token)
		return nil, Failed
	}
	return Cap(msg.Books), Committed
}

// Cap returns a copy of the first MaxSuggestions books.
func Cap(books []catalog.Book) []catalog.Book {
	n := len(books)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	out := make([]catalog.Book, n)
	copy(out, books[:n])
	return out
}
