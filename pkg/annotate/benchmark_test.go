package annotate

import (
	"strings"
	"testing"
)

// benchDoc approximates a README-sized document with the markup kinds the
// chunker has to classify.
var benchDoc = []byte(strings.Repeat(`# Heading

Some prose with a [link](https://example.com) and `+"`inline code`"+` in it.

- a list item with **bold** text
- another item

`+"```go\nfunc main() {}\n```"+`

> A quoted paragraph that should still be checked.

`, 40))

func BenchmarkMarkdown(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		Markdown(benchDoc)
	}
}

func BenchmarkMarkdownJSON(b *testing.B) {
	annotation, _ := Markdown(benchDoc)
	b.ResetTimer()
	for range b.N {
		if _, err := annotation.JSON(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDetectFormat(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		DetectFormat("README.md", benchDoc)
	}
}
