package suggest

import (
	"github.com/oakwood-commons/shelf/internal/catalog"
	"github.com/oakwood-commons/shelf/internal/route"
)

// ResultsMsg carries the outcome of one remote lookup back to the model.
type ResultsMsg struct {
	Token uint64
	Query string
	Books []catalog.Book
	Err   error
}

// NavigateMsg asks the host to show another page. The suggestion box has
// already hidden its panel and cleared its query when this is emitted.
type NavigateMsg struct {
	Route route.Route
}
