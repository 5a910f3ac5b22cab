package core

import "errors"

// Common errors.
var (
	ErrEmptyDraft     = errors.New("note has neither title nor content")
	ErrBadPattern     = errors.New("invalid tag pattern")
	ErrUnknownAdapter = errors.New("unknown storage adapter")
	ErrNotWatchable   = errors.New("storage does not support watching")
)
