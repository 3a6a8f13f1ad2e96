package dynamo

import "errors"

var (
	// ErrMalformedItem is returned when a table item cannot be decoded into a resume.
	ErrMalformedItem = errors.New("vitae: malformed resume item")

	// ErrUnprocessed is returned when a batch delete still has unprocessed
	// requests after every retry.
	ErrUnprocessed = errors.New("vitae: batch write left unprocessed items")
)
