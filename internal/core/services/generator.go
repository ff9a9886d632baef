package services

import (
	"context"

	"github.com/quill-labs/clipnote-cli/internal/clippings"
	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driving"
	"github.com/quill-labs/clipnote-cli/internal/logger"
)

// Ensure Generator implements the interface.
var _ driving.NoteGenerator = (*Generator)(nil)

// Generator runs the pipeline: parse the export, then look up context
// for each annotation in turn. Annotations are processed strictly one
// at a time; no lookup failure drops a record.
type Generator struct {
	locator driving.ContextLocator
}

// NewGenerator creates a generator backed by the given locator.
func NewGenerator(locator driving.ContextLocator) *Generator {
	return &Generator{locator: locator}
}

// Generate parses exportText and pairs every annotation with its
// recovered context, preserving parser order.
func (g *Generator) Generate(ctx context.Context, exportText string) []domain.Record {
	logger.Section("Parsing clippings")
	annotations := clippings.Parse(exportText)
	logger.Info("Parsed %d annotations", len(annotations))

	logger.Section("Recovering context")
	records := make([]domain.Record, 0, len(annotations))
	for _, annotation := range annotations {
		records = append(records, domain.Record{
			Annotation: annotation,
			Context:    g.locator.Locate(ctx, annotation),
		})
	}
	return records
}
