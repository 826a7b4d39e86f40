package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gramlint/pkg/problem"
)

// FormatProblem formats a single problem for terminal output. The source
// line, when non-empty, is echoed below the problem with a caret marking
// the column.
func (s *Styles) FormatProblem(path string, line, column int, p *problem.Problem, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		line,
		column,
	)

	ruleDisplay := s.RuleID.Render("(" + p.RuleID + ")")

	// Main line: location  category  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Category.Render(p.Category),
		s.Message.Render(p.Message),
		ruleDisplay,
	))

	// Source context
	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, column))
	}

	// Suggestions
	if len(p.Replacements) > 0 {
		builder.WriteString("    " + s.Dim.Render("Suggestion(s):") + " " +
			s.Suggestion.Render(strings.Join(p.Replacements, ", ")) + "\n")
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with problem output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatMoreInfo formats the reference links of a problem, one per line.
func (s *Styles) FormatMoreInfo(urls []string) string {
	if len(urls) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("    " + s.Dim.Render("More info:"))
	for i, u := range urls {
		if i == 0 {
			builder.WriteString(" " + s.Location.Render(u) + "\n")
			continue
		}
		builder.WriteString("               " + s.Location.Render(u) + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	if problemCount > 0 {
		word := "problems"
		if problemCount == 1 {
			word = "problem"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", problemCount, word))
	}
	return header
}
