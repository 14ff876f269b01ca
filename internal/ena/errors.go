package ena

import (
	"errors"
	"fmt"
)

// ErrInvalidRange reports a fixed release window whose end precedes its start.
var ErrInvalidRange = errors.New("end date before start date")

// StatusError is a search request that ended on a non-success status after
// the retry policy ran its course. Window is set when the request covered one
// date sub-window of a larger fetch, so callers can report which sub-range
// failed.
type StatusError struct {
	Status int
	Window *Window
}

func (e *StatusError) Error() string {
	if e.Window != nil {
		return fmt.Sprintf("ena search failed: status %d (window %s)", e.Status, e.Window)
	}
	return fmt.Sprintf("ena search failed: status %d", e.Status)
}
