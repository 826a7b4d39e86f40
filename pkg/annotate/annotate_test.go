package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/editor"
)

// reassemble concatenates chunk contents in order.
func reassemble(a Annotation) string {
	var sb strings.Builder
	for _, c := range a {
		sb.WriteString(c.Content())
	}
	return sb.String()
}

// textOf joins all text chunks (what the server checks).
func textOf(a Annotation) string {
	var sb strings.Builder
	for _, c := range a {
		if c.IsText() {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

func findSpan(spans []editor.ScopeSpan, name string) (editor.ScopeSpan, bool) {
	for _, s := range spans {
		if s.Name == name {
			return s, true
		}
	}
	return editor.ScopeSpan{}, false
}

func TestPlain(t *testing.T) {
	t.Parallel()

	a, spans := Plain([]byte("Teh quick fox."))
	require.Len(t, a, 1)
	assert.Equal(t, "Teh quick fox.", a[0].Text)
	assert.Empty(t, spans)

	a, _ = Plain(nil)
	assert.Empty(t, a)
}

func TestMarkdown_Reassembles(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\n\nThe body has an house in it.\n",
		"Use `go vet` often.\n",
		"Before.\n\n```\ncode here\n```\n\nAfter.\n",
		"A [link](https://example.com) in prose.\n",
		"Plain paragraph one.\n\nPlain paragraph two.\n",
		"*emphasis* and **strong** text\n",
		"- item one\n- item two\n",
	}

	for _, input := range inputs {
		chunks, _ := Markdown([]byte(input))
		assert.Equal(t, input, reassemble(chunks), "chunks must tile the input exactly")
	}
}

func TestMarkdown_HeadingSyntaxIsMarkup(t *testing.T) {
	t.Parallel()

	chunks, spans := Markdown([]byte("# Title\n\nThe body.\n"))

	checked := textOf(chunks)
	assert.Contains(t, checked, "Title")
	assert.Contains(t, checked, "The body.")
	assert.NotContains(t, checked, "#")

	_, ok := findSpan(spans, "markup.heading")
	assert.True(t, ok, "heading text should carry a heading span")
}

func TestMarkdown_CodeSpanIsMarkup(t *testing.T) {
	t.Parallel()

	input := []byte("Use `go vet` often.\n")
	chunks, spans := Markdown(input)

	checked := textOf(chunks)
	assert.Contains(t, checked, "Use ")
	assert.Contains(t, checked, " often.")
	assert.NotContains(t, checked, "go vet")

	span, ok := findSpan(spans, "markup.raw.inline")
	require.True(t, ok)
	assert.Equal(t, "go vet", string(input[span.Region.Start:span.Region.End]))
}

func TestMarkdown_FencedCodeIsMarkup(t *testing.T) {
	t.Parallel()

	input := []byte("Before.\n\n```\nteh code\n```\n\nAfter.\n")
	chunks, spans := Markdown(input)

	checked := textOf(chunks)
	assert.NotContains(t, checked, "teh code")
	assert.Contains(t, checked, "Before.")
	assert.Contains(t, checked, "After.")

	span, ok := findSpan(spans, "markup.raw.block")
	require.True(t, ok)
	assert.Equal(t, "teh code\n", string(input[span.Region.Start:span.Region.End]))
}

func TestMarkdown_ParagraphBreaksStayText(t *testing.T) {
	t.Parallel()

	chunks, _ := Markdown([]byte("One.\n\nTwo.\n"))

	checked := textOf(chunks)
	assert.Contains(t, checked, "One.\n\nTwo.",
		"blank line between paragraphs must remain visible to the checker")
}

func TestMarkdown_LinkTargetIsMarkup(t *testing.T) {
	t.Parallel()

	chunks, _ := Markdown([]byte("A [link label](https://example.com) here.\n"))

	checked := textOf(chunks)
	assert.Contains(t, checked, "link label")
	assert.NotContains(t, checked, "https://example.com")
}

func TestAnnotationJSON(t *testing.T) {
	t.Parallel()

	a := Annotation{{Text: "Hello "}, {Markup: "**"}, {Text: "world"}}
	encoded, err := a.JSON()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"annotation":[{"text":"Hello "},{"markup":"**"},{"text":"world"}]}`,
		encoded)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    Format
	}{
		{name: "markdown by extension", path: "README.md", content: "# Hi\n", want: FormatMarkdown},
		{name: "markdown long extension", path: "notes.markdown", content: "text\n", want: FormatMarkdown},
		{name: "plain text", path: "notes.txt", content: "Just words.\n", want: FormatPlain},
		{name: "unknown defaults to plain", path: "LETTER", content: "Dear reader,\n", want: FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DetectFormat(tt.path, []byte(tt.content))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBaseScope(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text.html.markdown", FormatMarkdown.BaseScope())
	assert.Equal(t, "text.plain", FormatPlain.BaseScope())
}
