package annotate

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gramlint/pkg/editor"
)

// Format classifies a document for payload building.
type Format int

const (
	// FormatPlain sends the document as a single text chunk.
	FormatPlain Format = iota

	// FormatMarkdown splits the document into text and markup chunks.
	FormatMarkdown
)

func (f Format) String() string {
	if f == FormatMarkdown {
		return "markdown"
	}
	return "plain"
}

// DetectFormat classifies a file by name and content.
// Detection runs through go-enry: the filename usually decides, with the
// content classifier as fallback for extension-less files.
func DetectFormat(path string, content []byte) Format {
	language := enry.GetLanguage(filepath.Base(path), content)
	if language == "Markdown" {
		return FormatMarkdown
	}
	return FormatPlain
}

// BaseScope returns the buffer base scope for a format.
func (f Format) BaseScope() string {
	if f == FormatMarkdown {
		return "text.html.markdown"
	}
	return "text.plain"
}

// Build produces the annotation and scope spans for content in this format.
func (f Format) Build(content []byte) (Annotation, []editor.ScopeSpan) {
	if f == FormatMarkdown {
		return Markdown(content)
	}
	return Plain(content)
}
