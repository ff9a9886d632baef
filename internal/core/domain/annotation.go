package domain

// Kind classifies an annotation as recorded by the e-reader.
type Kind string

const (
	// KindHighlight marks a passage the reader selected.
	KindHighlight Kind = "Highlight"

	// KindBookmark marks a position without selected text.
	KindBookmark Kind = "Bookmark"
)

// Annotation is one highlight or bookmark extracted from a clippings
// export. Annotations are immutable after parsing: the parser creates
// them once and downstream consumers only read them.
type Annotation struct {
	// ID is the unique identifier for the annotation.
	ID string `json:"id"`

	// Book is the title line exactly as it appears in the export,
	// including any author or parenthetical edition info. It is also
	// the grouping key, deliberately un-normalised.
	Book string `json:"book"`

	// Kind is the annotation kind. Empty when the metadata line did
	// not match the known grammar.
	Kind Kind `json:"kind,omitempty"`

	// Page is the page reference, either "N" or "N-M". Empty for
	// location-only records or unparseable metadata.
	Page string `json:"page,omitempty"`

	// Location is the e-reader location reference, either "N" or
	// "N-M". Empty for page-only records or unparseable metadata.
	Location string `json:"location,omitempty"`

	// Text is the annotation body. Multi-line bodies keep their
	// embedded line breaks.
	Text string `json:"text"`
}

// Context is the prose recovered around an annotation's text inside
// the matching book file. It is ephemeral: produced per annotation and
// consumed immediately by the report.
type Context struct {
	// Window is the surrounding text, up to 200 characters on each
	// side of the first occurrence, clipped at block boundaries.
	Window string `json:"window,omitempty"`

	// Found reports whether the annotation text was located. When
	// false the book was missing, unreadable, or did not contain the
	// text, and Window is empty.
	Found bool `json:"found"`
}

// Record pairs an annotation with its recovered context. Records are
// emitted in parser order: book groups in first-seen order, annotations
// within a group in source order.
type Record struct {
	Annotation Annotation `json:"annotation"`
	Context    Context    `json:"context"`
}
