package clippings

import (
	"regexp"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
)

// Metadata is the parsed form of an entry's second line. All fields are
// optional: a line outside the known grammar leaves every field empty.
type Metadata struct {
	Kind     domain.Kind
	Page     string
	Location string
}

// The metadata line grammar. Exactly one of three shapes; every line
// ends with an "Added on ..." timestamp clause which is ignored.
// The alternatives overlap at the character level (a page+location line
// also matches the page-only pattern), so they are tried in a fixed
// priority order and the first match wins.
var (
	pageAndLocation = regexp.MustCompile(`^- Your (Bookmark|Highlight) on page (\d+(?:-\d+)?) \| Location (\d+(?:-\d+)?)`)
	pageOnly        = regexp.MustCompile(`^- Your (Bookmark|Highlight) on page (\d+(?:-\d+)?)`)
	locationOnly    = regexp.MustCompile(`^- Your (Bookmark|Highlight) on Location (\d+(?:-\d+)?)`)
)

// ExtractMetadata parses a single metadata line. A line that matches
// none of the three shapes returns the zero Metadata; the caller keeps
// the annotation with the fields it has rather than failing.
func ExtractMetadata(line string) Metadata {
	if m := pageAndLocation.FindStringSubmatch(line); m != nil {
		return Metadata{Kind: domain.Kind(m[1]), Page: m[2], Location: m[3]}
	}
	if m := pageOnly.FindStringSubmatch(line); m != nil {
		return Metadata{Kind: domain.Kind(m[1]), Page: m[2]}
	}
	if m := locationOnly.FindStringSubmatch(line); m != nil {
		return Metadata{Kind: domain.Kind(m[1]), Location: m[2]}
	}
	return Metadata{}
}
