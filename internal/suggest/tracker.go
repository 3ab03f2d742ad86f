package suggest

import "unicode/utf8"

const (
	// MinQueryLength is the shortest query, in runes, that reaches the
	// remote catalog. Anything shorter clears and hides the panel.
	MinQueryLength = 3
	// MaxSuggestions caps how many hits the panel shows.
	MaxSuggestions = 5
)

// Eligible reports whether query is long enough to be looked up remotely.
func Eligible(query string) bool {
	return utf8.RuneCountInString(query) >= MinQueryLength
}

// Tracker owns the live query and the anchor input's measured width.
//
// Every mutation bumps a freshness token. A lookup carries the token that
// was live when it was issued; only a lookup whose token is still live may
// change what the panel shows.
type Tracker struct {
	query       string
	token       uint64
	anchorWidth int
}

// SetQuery records a raw input change and returns the new live token. Any
// string is accepted, including the empty string.
func (t *Tracker) SetQuery(q string) uint64 {
	t.query = q
	t.token++
	return t.token
}

// Reset clears the query. It also invalidates every in-flight lookup.
func (t *Tracker) Reset() uint64 {
	return t.SetQuery("")
}

// Query returns the live query.
func (t *Tracker) Query() string {
	return t.query
}

// Token returns the live freshness token.
func (t *Tracker) Token() uint64 {
	return t.token
}

// IsLive reports whether token still identifies the live query.
func (t *Tracker) IsLive(token uint64) bool {
	return token == t.token
}

// MeasureAnchor records the rendered width of the anchor input, in cells.
// The latest call wins; negative widths are stored as zero.
func (t *Tracker) MeasureAnchor(width int) {
	if width < 0 {
		width = 0
	}
	t.anchorWidth = width
}

// AnchorWidth returns the last measured anchor width.
func (t *Tracker) AnchorWidth() int {
	return t.anchorWidth
}
