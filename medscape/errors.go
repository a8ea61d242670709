package medscape

import (
	"errors"
	"fmt"
)

var (
	// ErrEnvelopeMismatch is returned when a lookup body is not wrapped in the expected callback
	ErrEnvelopeMismatch = errors.New("envelope mismatch")
	// ErrMalformedResponse is returned when a body cannot be decoded as the expected JSON
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoTypes is returned when a lookup result has no types array
	ErrNoTypes = errors.New("lookup returned no types")
	// ErrNoIdentifier is returned when the first lookup type carries no usable identifier
	ErrNoIdentifier = errors.New("lookup returned no identifier")
	// ErrTooFewIdentifiers is returned when fewer than two identifiers are passed to the fetcher
	ErrTooFewIdentifiers = errors.New("at least two identifiers are required")
	// ErrEmptyIdentifier is returned when an identifier passed to the fetcher is empty
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")
)

// StatusError reports a non-success HTTP status from the catalog
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s endpoint returned status %d", e.Endpoint, e.StatusCode)
}
