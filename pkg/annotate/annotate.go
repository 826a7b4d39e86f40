// Package annotate builds LanguageTool annotation payloads: it splits a
// document into "text" chunks the server should check and "markup" chunks it
// should treat as invisible, and classifies markup ranges with scope names
// for ignored-scope filtering.
package annotate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gramlint/pkg/editor"
)

// Chunk is one annotation element. Exactly one field is set.
type Chunk struct {
	Text   string `json:"text,omitempty"`
	Markup string `json:"markup,omitempty"`
}

// IsText reports whether the chunk is checkable text.
func (c Chunk) IsText() bool {
	return c.Text != ""
}

// Content returns whichever field is set.
func (c Chunk) Content() string {
	if c.Text != "" {
		return c.Text
	}
	return c.Markup
}

// Annotation is an ordered chunk list. Concatenating the chunk contents in
// order reproduces the input exactly, so server offsets line up with buffer
// offsets.
type Annotation []Chunk

// JSON encodes the annotation document for the "data" form field.
func (a Annotation) JSON() (string, error) {
	doc := struct {
		Annotation []Chunk `json:"annotation"`
	}{Annotation: a}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode annotation: %w", err)
	}
	return string(encoded), nil
}

// Plain wraps content in a single text chunk. Plain text carries no markup,
// so the span list is empty; the base scope comes from Format.BaseScope.
func Plain(content []byte) (Annotation, []editor.ScopeSpan) {
	if len(content) == 0 {
		return nil, nil
	}
	return Annotation{{Text: string(content)}}, nil
}

// segment is a byte range holding checkable text.
type segment struct {
	start int
	end   int
}

// Markdown parses content as GitHub-flavored Markdown and splits it into
// text and markup chunks. Inline prose (including heading titles, emphasis
// content and link labels) is text; syntax punctuation, code spans, code
// blocks and raw HTML are markup. Whitespace between text runs stays text so
// sentence and paragraph boundaries survive.
func Markdown(content []byte) (Annotation, []editor.ScopeSpan) {
	if len(content) == 0 {
		return nil, nil
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	segments, rawSpans := collect(doc)
	segments = mergeSegments(segments)

	chunks, markupSpans := buildChunks(content, segments)
	spans := append(rawSpans, markupSpans...)
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Region.Start < spans[j].Region.Start
	})

	return chunks, spans
}

// collect walks the AST gathering text segments and scope spans for ranges
// that must never be checked.
func collect(doc ast.Node) ([]segment, []editor.ScopeSpan) {
	var segments []segment
	var spans []editor.ScopeSpan

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			if r, ok := blockLinesRegion(n); ok {
				spans = append(spans, editor.ScopeSpan{Region: r, Name: "markup.raw.block"})
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeSpan:
			if r, ok := childTextRegion(n); ok {
				spans = append(spans, editor.ScopeSpan{Region: r, Name: "markup.raw.inline"})
			}
			return ast.WalkSkipChildren, nil

		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			if r, ok := blockLinesRegion(n); ok {
				spans = append(spans, editor.ScopeSpan{Region: r, Name: "markup.heading"})
			}

		case *ast.Text:
			seg := node.Segment
			if seg.Stop > seg.Start {
				segments = append(segments, segment{start: seg.Start, end: seg.Stop})
			}
		}

		return ast.WalkContinue, nil
	})

	return segments, spans
}

// blockLinesRegion returns the byte range covered by a block node's lines.
func blockLinesRegion(n ast.Node) (editor.Region, bool) {
	if n.Type() != ast.TypeBlock {
		return editor.Region{}, false
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return editor.Region{}, false
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	return editor.Region{Start: first.Start, End: last.Stop}, true
}

// childTextRegion returns the byte range covered by a node's text children.
func childTextRegion(n ast.Node) (editor.Region, bool) {
	start, end := -1, -1
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		if start < 0 || t.Segment.Start < start {
			start = t.Segment.Start
		}
		if t.Segment.Stop > end {
			end = t.Segment.Stop
		}
	}
	if start < 0 || end <= start {
		return editor.Region{}, false
	}
	return editor.Region{Start: start, End: end}, true
}

// mergeSegments sorts segments and merges overlapping or touching ranges.
func mergeSegments(segments []segment) []segment {
	if len(segments) == 0 {
		return nil
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].start < segments[j].start
	})

	merged := []segment{segments[0]}
	for _, seg := range segments[1:] {
		last := &merged[len(merged)-1]
		if seg.start <= last.end {
			if seg.end > last.end {
				last.end = seg.end
			}
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// buildChunks tiles the whole content with chunks: text segments become text
// chunks; the gaps between them become markup, except that whitespace at a
// gap's edges stays text so the server still sees paragraph breaks.
func buildChunks(content []byte, segments []segment) (Annotation, []editor.ScopeSpan) {
	var chunks Annotation
	var spans []editor.ScopeSpan

	appendChunk := func(kind string, start, end int) {
		if end <= start {
			return
		}
		piece := string(content[start:end])
		if kind == "text" {
			chunks = appendMerged(chunks, Chunk{Text: piece})
			return
		}
		chunks = appendMerged(chunks, Chunk{Markup: piece})
		spans = append(spans, editor.ScopeSpan{
			Region: editor.Region{Start: start, End: end},
			Name:   "markup.other",
		})
	}

	appendGap := func(start, end int) {
		gap := string(content[start:end])
		if strings.TrimSpace(gap) == "" {
			appendChunk("text", start, end)
			return
		}
		// Peel whitespace off both edges so blank lines around markup
		// stay visible to the checker.
		lead := len(gap) - len(strings.TrimLeft(gap, " \t\r\n"))
		trail := len(gap) - len(strings.TrimRight(gap, " \t\r\n"))
		appendChunk("text", start, start+lead)
		appendChunk("markup", start+lead, end-trail)
		appendChunk("text", end-trail, end)
	}

	pos := 0
	for _, seg := range segments {
		if seg.start > pos {
			appendGap(pos, seg.start)
		}
		start := seg.start
		if pos > start {
			start = pos
		}
		appendChunk("text", start, seg.end)
		if seg.end > pos {
			pos = seg.end
		}
	}
	if pos < len(content) {
		appendGap(pos, len(content))
	}

	return chunks, spans
}

// appendMerged appends a chunk, coalescing it with the previous chunk when
// both are the same kind.
func appendMerged(chunks Annotation, c Chunk) Annotation {
	if len(chunks) > 0 {
		last := &chunks[len(chunks)-1]
		if last.IsText() && c.IsText() {
			last.Text += c.Text
			return chunks
		}
		if !last.IsText() && !c.IsText() {
			last.Markup += c.Markup
			return chunks
		}
	}
	return append(chunks, c)
}
