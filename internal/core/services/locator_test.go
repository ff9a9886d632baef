package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driven"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driving"
)

// fakeExtractor serves canned blocks keyed by file base name.
type fakeExtractor struct {
	exts   []string
	blocks map[string][]string
	err    error
	calls  []string
}

func (f *fakeExtractor) Extensions() []string { return f.exts }

func (f *fakeExtractor) Extract(_ context.Context, path string) ([]string, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	return f.blocks[filepath.Base(path)], nil
}

// touch creates empty library files so the walk can find them.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
}

func annotation(book, text string) domain.Annotation {
	return domain.Annotation{ID: "test", Book: book, Kind: domain.KindHighlight, Text: text}
}

func TestLocate_FullWindowLength(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "overcoming-gravity.pdf")

	text := "the annotated passage"
	block := strings.Repeat("a", 300) + text + strings.Repeat("b", 300)
	extractor := &fakeExtractor{
		exts:   []string{".pdf"},
		blocks: map[string][]string{"overcoming-gravity.pdf": {block}},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Overcoming Gravity", text))

	require.True(t, result.Found)
	assert.Len(t, result.Window, len(text)+400)
	assert.Contains(t, result.Window, text)
}

func TestLocate_WindowClippedAtBoundaries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "short.epub")

	text := "needle"
	extractor := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"short.epub": {"xy" + text + "z"}},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Short", text))

	require.True(t, result.Found)
	assert.Equal(t, "xy"+text+"z", result.Window)
	assert.Less(t, len(result.Window), len(text)+400)
}

func TestLocate_WindowCountsRunesNotBytes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "livre.epub")

	text := "passage"
	block := strings.Repeat("é", 250) + text + strings.Repeat("è", 250)
	extractor := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"livre.epub": {block}},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Livre", text))

	require.True(t, result.Found)
	assert.Equal(t, len(text)+400, len([]rune(result.Window)))
}

func TestLocate_NoMatchingFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "unrelated.epub")

	extractor := &fakeExtractor{exts: []string{".epub"}}
	locator := NewLocator(dir, extractor)

	result := locator.Locate(context.Background(), annotation("Overcoming Gravity", "text"))

	assert.False(t, result.Found)
	assert.Empty(t, result.Window)
	assert.Empty(t, extractor.calls)
}

func TestLocate_NormalizedKeyMatching(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "title-special.epub")

	extractor := &fakeExtractor{exts: []string{".epub"}}
	locator := NewLocator(dir, extractor)

	// Key "author - title" is not a substring of stem "title-special".
	result := locator.Locate(context.Background(), annotation("Author - Title (Special Edition)", "text"))

	assert.False(t, result.Found)
	assert.Empty(t, extractor.calls)
}

func TestLocate_KeyIsCaseInsensitiveAndParentheticalStripped(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "My-Deep-Work-Notes.epub")

	extractor := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"My-Deep-Work-Notes.epub": {"before deep passage after"}},
	}
	locator := NewLocator(dir, extractor)

	result := locator.Locate(context.Background(), annotation("deep-work (Cal Newport)", "deep passage"))

	assert.True(t, result.Found)
}

func TestLocate_FormatPreferenceOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gravity.epub", "gravity.pdf")

	text := "shared passage"
	epub := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"gravity.epub": {"epub " + text}},
	}
	pdf := &fakeExtractor{
		exts:   []string{".pdf"},
		blocks: map[string][]string{"gravity.pdf": {"pdf " + text}},
	}

	locator := NewLocator(dir, epub, pdf)
	result := locator.Locate(context.Background(), annotation("Gravity", text))

	require.True(t, result.Found)
	assert.Equal(t, "epub "+text, result.Window)
	assert.Empty(t, pdf.calls)
}

func TestLocate_OnlyFirstMatchedFileSearched(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a-gravity.epub", "b-gravity.epub")

	text := "the passage"
	extractor := &fakeExtractor{
		exts: []string{".epub"},
		blocks: map[string][]string{
			"a-gravity.epub": {"no match here"},
			"b-gravity.epub": {"contains " + text},
		},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Gravity", text))

	// The first matching file in traversal order wins; the passage
	// being absent from it is final.
	assert.False(t, result.Found)
	assert.Len(t, extractor.calls, 1)
	assert.Equal(t, "a-gravity.epub", filepath.Base(extractor.calls[0]))
}

func TestLocate_UnreadableFileDegrades(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gravity.pdf")

	extractor := &fakeExtractor{exts: []string{".pdf"}, err: domain.ErrUnreadable}
	locator := NewLocator(dir, extractor)

	result := locator.Locate(context.Background(), annotation("Gravity", "text"))

	assert.False(t, result.Found)
}

func TestLocate_SearchesBlocksInOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gravity.pdf")

	text := "page three passage"
	extractor := &fakeExtractor{
		exts: []string{".pdf"},
		blocks: map[string][]string{
			"gravity.pdf": {"page one", "page two", "before " + text + " after"},
		},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Gravity", text))

	require.True(t, result.Found)
	assert.Equal(t, "before "+text+" after", result.Window)
}

func TestLocate_RecursesIntoSubdirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, filepath.Join("fitness", "training", "gravity.epub"))

	extractor := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"gravity.epub": {"around the passage here"}},
	}

	locator := NewLocator(dir, extractor)
	result := locator.Locate(context.Background(), annotation("Gravity", "the passage"))

	assert.True(t, result.Found)
}

func TestLocate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gravity.epub")

	text := "stable passage"
	extractor := &fakeExtractor{
		exts:   []string{".epub"},
		blocks: map[string][]string{"gravity.epub": {"before " + text + " after"}},
	}
	locator := NewLocator(dir, extractor)
	ann := annotation("Gravity", text)

	first := locator.Locate(context.Background(), ann)
	second := locator.Locate(context.Background(), ann)

	assert.Equal(t, first, second)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driving.ContextLocator = (*Locator)(nil)
	var _ driven.TextExtractor = (*fakeExtractor)(nil)
}
