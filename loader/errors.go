package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingElectionID is returned for results requests without an id.
	ErrMissingElectionID = errors.New("results mode requires an election id")
	// ErrUnexpectedShape is returned when a feed is neither a list nor a keyed object.
	ErrUnexpectedShape = errors.New("unexpected payload shape")
)

// StatusError reports a non-200 response from a feed.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.Code, e.Body)
}
