package driving

import (
	"context"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
)

// ContextLocator recovers the prose surrounding an annotation from the
// matching book file in a library directory.
type ContextLocator interface {
	// Locate matches the annotation's book title to a library file,
	// extracts its text and searches for the annotation body. A failed
	// match, an unreadable file or an absent passage all yield a
	// Context with Found=false; lookups never fail the run.
	Locate(ctx context.Context, annotation domain.Annotation) domain.Context
}
