// Package limiter pages through a result list with --limit, --offset and
// --tail.
package limiter

import "fmt"

// Config holds the paging flags.
type Config struct {
	Limit  int // at most this many records (0 = unlimited)
	Offset int // skip the first N records
	Tail   int // only the last N records; excludes Limit and ignores Offset
}

// Validate rejects negative values and --limit combined with --tail.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any paging is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open window [start, end) of a list of length n.
func (c Config) Bounds(n int) (int, int) {
	if c.Tail > 0 {
		return max(n-c.Tail, 0), n
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns the configured window of items. The result shares the
// backing array of items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.Bounds(len(items))
	return items[start:end]
}
