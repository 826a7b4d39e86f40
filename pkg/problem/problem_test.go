package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/languagetool"
)

func typoMatch(offset, length int, replacements ...string) languagetool.Match {
	reps := make([]languagetool.Replacement, 0, len(replacements))
	for _, r := range replacements {
		reps = append(reps, languagetool.Replacement{Value: r})
	}
	return languagetool.Match{
		Message:      "Possible spelling mistake found.",
		Offset:       offset,
		Length:       length,
		Replacements: reps,
		Rule: languagetool.Rule{
			ID:       "MORFOLOGIK_RULE_EN_US",
			URLs:     []languagetool.RuleURL{{Value: "https://languagetool.org/insights"}},
			Category: languagetool.Category{ID: "TYPOS", Name: "Possible Typo"},
		},
	}
}

func TestFromMatch(t *testing.T) {
	t.Parallel()

	p := FromMatch(typoMatch(7, 3, "The", "Ten"))

	assert.Equal(t, "Possible Typo", p.Category)
	assert.Equal(t, "Possible spelling mistake found.", p.Message)
	assert.Equal(t, []string{"The", "Ten"}, p.Replacements)
	assert.Equal(t, "MORFOLOGIK_RULE_EN_US", p.RuleID)
	assert.Equal(t, []string{"https://languagetool.org/insights"}, p.URLs)
	assert.Equal(t, 7, p.Offset)
	assert.Equal(t, 3, p.Length)
}

func TestFromMatch_MissingURLs(t *testing.T) {
	t.Parallel()

	m := typoMatch(0, 3)
	m.Rule.URLs = nil

	p := FromMatch(m)
	assert.Empty(t, p.URLs)
}

func TestShift(t *testing.T) {
	t.Parallel()

	// Offsets reported against a checked excerpt become buffer-absolute by
	// adding the excerpt start.
	m := typoMatch(4, 5)
	selectionStart := 100

	p := FromMatch(m).Shift(selectionStart)

	assert.Equal(t, m.Offset+selectionStart, p.Offset)
	assert.Equal(t, m.Length, p.Length)
	assert.Equal(t, editor.Region{Start: 104, End: 109}, p.Region())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := Problem{Category: "Possible Typo", Original: "Teh", Offset: 0, RuleID: "R1"}
	b := Problem{Category: "Possible Typo", Original: "Teh", Offset: 40, RuleID: "R2"}
	c := Problem{Category: "Grammar", Original: "Teh"}
	d := Problem{Category: "Possible Typo", Original: "teh"}

	assert.True(t, Equal(a, a), "Equal must be reflexive")
	assert.True(t, Equal(a, b), "offsets and rule IDs do not participate")
	assert.Equal(t, Equal(a, b), Equal(b, a), "Equal must be symmetric")
	assert.False(t, Equal(a, c), "category differs")
	assert.False(t, Equal(a, d), "original text differs")
}

func TestEqualProblems(t *testing.T) {
	t.Parallel()

	list := []Problem{
		{Category: "Possible Typo", Original: "Teh", Offset: 0},
		{Category: "Grammar", Original: "is was"},
		{Category: "Possible Typo", Original: "Teh", Offset: 50},
	}
	probe := Problem{Category: "Possible Typo", Original: "Teh", Offset: 999}

	equal := EqualProblems(list, probe)

	require.Len(t, equal, 2)
	assert.Equal(t, 0, equal[0].Offset)
	assert.Equal(t, 50, equal[1].Offset)
}

func TestSolved(t *testing.T) {
	t.Parallel()

	t.Run("unsolved while text matches snapshot", func(t *testing.T) {
		t.Parallel()

		buf := editor.NewMemBuffer("Teh quick fox.")
		buf.AddRegions("k", []editor.Region{{Start: 0, End: 3}}, "comment", editor.DrawOutlined)
		p := Problem{RegionKey: "k", Original: "Teh"}

		assert.False(t, Solved(buf, p))
	})

	t.Run("solved when region is empty", func(t *testing.T) {
		t.Parallel()

		buf := editor.NewMemBuffer("Teh quick fox.")
		buf.AddRegions("k", []editor.Region{{Start: 0, End: 0}}, "", editor.DrawOutlined)
		p := Problem{RegionKey: "k", Original: "Teh"}

		assert.True(t, Solved(buf, p))
	})

	t.Run("solved when text differs from snapshot", func(t *testing.T) {
		t.Parallel()

		buf := editor.NewMemBuffer("The quick fox.")
		buf.AddRegions("k", []editor.Region{{Start: 0, End: 3}}, "comment", editor.DrawOutlined)
		p := Problem{RegionKey: "k", Original: "Teh"}

		assert.True(t, Solved(buf, p))
	})

	t.Run("solved when marker is missing", func(t *testing.T) {
		t.Parallel()

		buf := editor.NewMemBuffer("Teh quick fox.")
		p := Problem{RegionKey: "gone", Original: "Teh"}

		assert.True(t, Solved(buf, p))
	})
}

func TestScopeIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scopes   []string
		patterns []string
		want     bool
	}{
		{
			name:     "no patterns",
			scopes:   []string{"text.html.markdown", "markup.raw.inline"},
			patterns: nil,
			want:     false,
		},
		{
			name:     "exact match",
			scopes:   []string{"text.plain"},
			patterns: []string{"text.plain"},
			want:     true,
		},
		{
			name:     "glob matches nested scope",
			scopes:   []string{"text.html.markdown", "markup.raw.inline"},
			patterns: []string{"markup.raw*"},
			want:     true,
		},
		{
			name:     "cross product: second scope hits second pattern",
			scopes:   []string{"text.html.markdown", "markup.heading"},
			patterns: []string{"comment*", "markup.head*"},
			want:     true,
		},
		{
			name:     "no pair matches",
			scopes:   []string{"text.html.markdown"},
			patterns: []string{"markup.*"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scopeIgnored(tt.scopes, tt.patterns))
		})
	}
}
