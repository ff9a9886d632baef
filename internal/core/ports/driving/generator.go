package driving

import (
	"context"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
)

// NoteGenerator runs the full pipeline: parse a clippings export,
// recover context for every annotation, and return the ordered records.
type NoteGenerator interface {
	// Generate parses exportText and pairs each annotation with its
	// context. Record order mirrors the export: book groups in
	// first-seen order, annotations within a group in source order.
	Generate(ctx context.Context, exportText string) []domain.Record
}
