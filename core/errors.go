package core

import "errors"

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrMalformedSearchResponse is returned when a search response cannot be
// interpreted. It is distinct from a well-formed response with zero matches.
var ErrMalformedSearchResponse = errors.New("malformed search response")

// ErrSearchIndexNotReady is returned when Discord answers a search with 202,
// meaning the index for the guild or channel is still being built.
var ErrSearchIndexNotReady = errors.New("search index not ready")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}
