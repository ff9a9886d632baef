package driven

import "context"

// TextExtractor produces the plain-text content of a book file as an
// ordered sequence of text blocks. Each container format (EPUB, PDF)
// provides its own implementation; the locator dispatches on file
// extension.
type TextExtractor interface {
	// Extensions returns the lower-cased file extensions this
	// extractor handles, including the leading dot.
	Extensions() []string

	// Extract returns the file's text blocks in document order.
	// For EPUB-like containers a block is one spine document with
	// markup stripped; for PDF-like files a block is one page, with
	// textless pages omitted. A file that cannot be opened or whose
	// internal structure is corrupt yields an error wrapping
	// domain.ErrUnreadable.
	Extract(ctx context.Context, path string) ([]string, error)
}
