package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driven"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driving"
	"github.com/quill-labs/clipnote-cli/internal/logger"
)

// Ensure Locator implements the interface.
var _ driving.ContextLocator = (*Locator)(nil)

// contextRadius is the number of characters kept on each side of a
// found passage.
const contextRadius = 200

// Locator recovers the prose around an annotation from the library
// directory. It holds no state across calls: each Locate is an
// independent walk, extract and search, idempotent for an unchanged
// library.
type Locator struct {
	libraryDir string
	extractors []driven.TextExtractor // in format-preference order
}

// NewLocator creates a locator over libraryDir. Extractors are
// consulted in the given order; earlier formats win when both have a
// matching file.
func NewLocator(libraryDir string, extractors ...driven.TextExtractor) *Locator {
	return &Locator{
		libraryDir: libraryDir,
		extractors: extractors,
	}
}

// Locate matches the annotation's book title to a library file and
// searches the file's text for the annotation body. Every failure mode
// (no matching file, unreadable file, passage absent) degrades to
// Found=false.
func (l *Locator) Locate(ctx context.Context, annotation domain.Annotation) domain.Context {
	key := normalizedKey(annotation.Book)
	logger.Debug("Matching %q against library %s", key, l.libraryDir)

	candidates := l.collectCandidates()

	for _, extractor := range l.extractors {
		for _, ext := range extractor.Extensions() {
			for _, path := range candidates[ext] {
				if !strings.Contains(strings.ToLower(fileStem(path)), key) {
					continue
				}
				logger.Debug("Matched %s", path)
				return l.search(ctx, extractor, path, annotation.Text)
			}
		}
	}

	logger.Debug("No library file matches %q", key)
	return domain.Context{}
}

// collectCandidates walks the library once and buckets file paths by
// lower-cased extension, preserving traversal order within each bucket.
func (l *Locator) collectCandidates() map[string][]string {
	candidates := make(map[string][]string)
	err := filepath.WalkDir(l.libraryDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		candidates[ext] = append(candidates[ext], path)
		return nil
	})
	if err != nil {
		logger.Warn("walking %s: %v", l.libraryDir, err)
	}
	return candidates
}

// search extracts the file's text blocks and returns the window around
// the first block containing the annotation text. Only the matched file
// is searched; its absence of the passage is final.
func (l *Locator) search(ctx context.Context, extractor driven.TextExtractor, path, text string) domain.Context {
	blocks, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Warn("failed to read %s: %v", path, err)
		return domain.Context{}
	}

	for _, block := range blocks {
		if w, ok := window(block, text); ok {
			return domain.Context{Window: w, Found: true}
		}
	}
	return domain.Context{}
}

// normalizedKey derives the fuzzy matching key from a raw title line:
// the substring before the first '(', trimmed and lower-cased.
func normalizedKey(book string) string {
	title, _, _ := strings.Cut(book, "(")
	return strings.ToLower(strings.TrimSpace(title))
}

// fileStem returns the file name without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// window returns up to contextRadius characters around the first exact
// occurrence of text in block, clipped at block boundaries. The match
// is case-sensitive and literal.
func window(block, text string) (string, bool) {
	idx := strings.Index(block, text)
	if idx < 0 {
		return "", false
	}

	runes := []rune(block)
	start := utf8.RuneCountInString(block[:idx])
	end := start + utf8.RuneCountInString(text)

	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(runes) {
		hi = len(runes)
	}
	return string(runes[lo:hi]), true
}
