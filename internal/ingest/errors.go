package ingest

import "errors"

// The kinds of failure surfaced by the ingestion service. Every error returned
// by the service wraps exactly one of these (or is an unexpected metadata
// store failure), so callers should inspect them using errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrProcessingFailed   = errors.New("processing failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
