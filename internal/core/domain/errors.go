package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUnreadable indicates a book file could not be opened or its
	// internal structure could not be parsed. This degrades a single
	// context lookup, never the whole run.
	ErrUnreadable = errors.New("unreadable book file")
)
