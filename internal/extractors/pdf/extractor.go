package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driven"
	"github.com/quill-labs/clipnote-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles paginated PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract returns one plain-text block per page, in page order. Pages
// with no extractable text are skipped. A file that cannot be opened or
// parsed yields an error wrapping domain.ErrUnreadable.
func (e *Extractor) Extract(_ context.Context, filePath string) (blocks []string, err error) {
	// The pdf package panics on some malformed cross-reference tables;
	// treat that the same as an unparseable file.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("panic while reading %s: %v", filePath, r)
			blocks = nil
			err = fmt.Errorf("parsing %s: %w", filePath, domain.ErrUnreadable)
		}
	}()

	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filePath, domain.ErrUnreadable)
	}
	defer file.Close()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, text)
	}
	return blocks, nil
}
