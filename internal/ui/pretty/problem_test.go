package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
	"github.com/yaklabco/gramlint/pkg/problem"
)

func TestFormatProblem_Basic(t *testing.T) {
	styles := pretty.NewStyles(false) // No colors for easier testing

	p := &problem.Problem{
		Category: "Possible Typo",
		Message:  "Possible spelling mistake found.",
		RuleID:   "MORFOLOGIK_RULE_EN_US",
		Offset:   0,
		Length:   3,
		Original: "Teh",
	}

	result := styles.FormatProblem("notes.md", 10, 1, p, "")

	assert.Contains(t, result, "notes.md:10:1")
	assert.Contains(t, result, "Possible Typo")
	assert.Contains(t, result, "Possible spelling mistake found.")
	assert.Contains(t, result, "(MORFOLOGIK_RULE_EN_US)")
}

func TestFormatProblem_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	p := &problem.Problem{
		Category: "Possible Typo",
		Message:  "Possible spelling mistake found.",
		RuleID:   "MORFOLOGIK_RULE_EN_US",
		Offset:   0,
		Length:   3,
		Original: "Teh",
	}

	result := styles.FormatProblem("notes.md", 1, 1, p, "Teh quick fox.")

	assert.Contains(t, result, "Teh quick fox.")
	assert.Contains(t, result, "^")
}

func TestFormatProblem_NoContextWhenLineEmpty(t *testing.T) {
	styles := pretty.NewStyles(false)

	p := &problem.Problem{
		Category: "Grammar",
		Message:  "Subject and verb do not agree.",
		RuleID:   "AGREEMENT",
	}

	result := styles.FormatProblem("notes.md", 3, 5, p, "")

	assert.NotContains(t, result, "^")
}

func TestFormatProblem_WithSuggestions(t *testing.T) {
	styles := pretty.NewStyles(false)

	p := &problem.Problem{
		Category:     "Possible Typo",
		Message:      "Possible spelling mistake found.",
		RuleID:       "MORFOLOGIK_RULE_EN_US",
		Replacements: []string{"The", "Ten"},
	}

	result := styles.FormatProblem("notes.md", 1, 1, p, "")

	assert.Contains(t, result, "Suggestion(s): The, Ten")
}

func TestFormatProblem_NoSuggestionLineWithoutReplacements(t *testing.T) {
	styles := pretty.NewStyles(false)

	p := &problem.Problem{
		Category: "Style",
		Message:  "This sentence is very long.",
		RuleID:   "TOO_LONG_SENTENCE",
	}

	result := styles.FormatProblem("notes.md", 1, 1, p, "")

	assert.NotContains(t, result, "Suggestion")
}

func TestFormatSourceContext_CaretAlignment(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("Teh quick fox.", 5)

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	assert.Len(t, lines, 2)

	// The caret sits at the column, past the shared indent.
	caretLine := lines[1]
	assert.Equal(t, "^", strings.TrimSpace(caretLine))
	assert.Equal(t, len("        ")+4, strings.Index(caretLine, "^"))
}

func TestFormatMoreInfo(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatMoreInfo([]string{
		"https://languagetool.org/insights/post/spelling",
		"https://languagetool.org/insights/post/grammar",
	})

	assert.Contains(t, result, "More info: https://languagetool.org/insights/post/spelling")
	assert.Contains(t, result, "https://languagetool.org/insights/post/grammar")
}

func TestFormatMoreInfo_Empty(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Empty(t, styles.FormatMoreInfo(nil))
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "notes.md (3 problems)", styles.FormatFileHeader("notes.md", 3))
	assert.Equal(t, "notes.md (1 problem)", styles.FormatFileHeader("notes.md", 1))
	assert.Equal(t, "notes.md", styles.FormatFileHeader("notes.md", 0))
}
