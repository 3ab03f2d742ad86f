package catalog

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus marks a response whose status code was not 2xx.
var ErrUnexpectedStatus = errors.New("unexpected status")

// LookupError is returned for every failed remote lookup: transport
// failures, non-success responses, and bodies that do not decode.
type LookupError struct {
	Op         string
	Query      string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %q: status %d: %v", e.Op, e.Query, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Query, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsLookupError reports whether err is, or wraps, a LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
