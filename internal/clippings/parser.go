package clippings

import (
	"strings"

	"github.com/google/uuid"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
)

// separator delimits entries in the export file.
const separator = "=========="

// bookGroup keeps one book's annotations in source order.
type bookGroup struct {
	book        string
	annotations []domain.Annotation
}

// Parse converts the full export text into annotations. Entries are
// grouped by their raw title line; groups keep the order their first
// annotation appeared in, and annotations keep source order within a
// group. Malformed entries (fewer than three non-blank lines) are
// discarded silently. A leading byte-order mark is tolerated.
func Parse(content string) []domain.Annotation {
	content = strings.TrimPrefix(content, "\ufeff")

	var groups []bookGroup
	index := make(map[string]int)

	for _, entry := range strings.Split(content, separator) {
		lines := nonBlankLines(entry)
		if len(lines) < 3 {
			continue
		}

		meta := ExtractMetadata(lines[1])
		ann := domain.Annotation{
			ID:       uuid.New().String(),
			Book:     lines[0],
			Kind:     meta.Kind,
			Page:     meta.Page,
			Location: meta.Location,
			Text:     strings.Join(lines[2:], "\n"),
		}

		i, ok := index[ann.Book]
		if !ok {
			i = len(groups)
			index[ann.Book] = i
			groups = append(groups, bookGroup{book: ann.Book})
		}
		groups[i].annotations = append(groups[i].annotations, ann)
	}

	var out []domain.Annotation
	for _, g := range groups {
		out = append(out, g.annotations...)
	}
	return out
}

// nonBlankLines splits an entry into trimmed lines, dropping blanks.
func nonBlankLines(entry string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(entry), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
