// Package report serializes annotation records to the markdown notes
// template.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
)

// notFound is the literal context marker for failed lookups.
const notFound = "Not found"

// Render produces the markdown report for records, in the order given.
// Each record is a level-2 heading with the raw book title, a Note
// line, a Context line and a horizontal rule; every record ends with
// the rule, including the last.
func Render(records []domain.Record) string {
	var b strings.Builder
	for _, record := range records {
		fmt.Fprintf(&b, "## %s\n\n", record.Annotation.Book)
		fmt.Fprintf(&b, "**Note:** %s\n\n", record.Annotation.Text)

		context := notFound
		if record.Context.Found {
			context = record.Context.Window
		}
		fmt.Fprintf(&b, "**Context:** %s\n\n", context)
		b.WriteString("---\n\n")
	}
	return b.String()
}

// Write renders records and writes the report to w.
func Write(w io.Writer, records []domain.Record) error {
	if _, err := io.WriteString(w, Render(records)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
