package epub

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/quill-labs/clipnote-cli/internal/core/domain"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles EPUB containers. An EPUB is a ZIP archive whose
// reading order is declared in the OPF package document referenced from
// META-INF/container.xml.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".epub"}
}

// Extract returns one plain-text block per spine document, in spine
// order. Markup is stripped and inter-element whitespace collapsed to
// single spaces. A file that is not a valid container yields an error
// wrapping domain.ErrUnreadable.
func (e *Extractor) Extract(_ context.Context, filePath string) ([]string, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filePath, domain.ErrUnreadable)
	}
	defer reader.Close()

	opfPath, err := rootfilePath(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, domain.ErrUnreadable)
	}

	parts, err := spineDocuments(&reader.Reader, opfPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, domain.ErrUnreadable)
	}

	var blocks []string
	for _, part := range parts {
		markup, err := readArchiveFile(&reader.Reader, part)
		if err != nil {
			// Missing or unreadable part, keep the rest.
			continue
		}
		if text := stripMarkup(markup); text != "" {
			blocks = append(blocks, text)
		}
	}
	return blocks, nil
}

// container mirrors META-INF/container.xml.
type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// packageDoc mirrors the parts of the OPF package document we need.
type packageDoc struct {
	Manifest struct {
		Items []manifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type manifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// rootfilePath locates the OPF package document via container.xml.
func rootfilePath(reader *zip.Reader) (string, error) {
	data, err := readArchiveFile(reader, "META-INF/container.xml")
	if err != nil {
		return "", err
	}

	var c container
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", err
	}
	if len(c.Rootfiles) == 0 || c.Rootfiles[0].FullPath == "" {
		return "", domain.ErrUnreadable
	}
	return c.Rootfiles[0].FullPath, nil
}

// spineDocuments returns the archive paths of the XHTML content parts
// in spine (reading) order.
func spineDocuments(reader *zip.Reader, opfPath string) ([]string, error) {
	data, err := readArchiveFile(reader, opfPath)
	if err != nil {
		return nil, err
	}

	var pkg packageDoc
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	manifest := make(map[string]manifestItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		manifest[item.ID] = item
	}

	opfDir := path.Dir(opfPath)
	var parts []string
	for _, ref := range pkg.Spine.ItemRefs {
		item, ok := manifest[ref.IDRef]
		if !ok {
			continue
		}
		if item.MediaType != "application/xhtml+xml" && item.MediaType != "text/html" {
			continue
		}
		parts = append(parts, path.Join(opfDir, item.Href))
	}
	return parts, nil
}

// readArchiveFile reads one file from the archive by exact path.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: %w", name, domain.ErrUnreadable)
}

var (
	allTags    = regexp.MustCompile(`<[^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// stripMarkup converts an XHTML part to plain text: tags become spaces,
// entities are decoded, and whitespace runs collapse to single spaces.
func stripMarkup(markup []byte) string {
	text := allTags.ReplaceAllString(string(markup), " ")
	text = html.UnescapeString(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
