package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/languagetool"
)

// twoTyposBuffer returns a buffer with the same typo at offsets 0 and 15,
// and a session tracking both.
func twoTyposBuffer(t *testing.T) (*editor.MemBuffer, *Session) {
	t.Helper()

	buf := editor.NewMemBuffer("Teh quick fox. Teh slow dog.")
	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			typoMatch(15, 3, "The"),
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 2, s.Len())
	return buf, s
}

func TestNewSession_MapsAndHighlights(t *testing.T) {
	t.Parallel()

	buf, s := twoTyposBuffer(t)

	problems := s.Problems()
	first, second := problems[0], problems[1]

	assert.Equal(t, 0, first.Offset)
	assert.Equal(t, 3, first.Length)
	assert.Equal(t, "Teh", first.Original)
	assert.Equal(t, "Teh", second.Original)
	assert.NotEqual(t, first.RegionKey, second.RegionKey)

	regions := buf.Regions(first.RegionKey)
	require.Len(t, regions, 1)
	assert.Equal(t, editor.Region{Start: 0, End: 3}, regions[0])
	assert.Equal(t, "comment", buf.RegionScope(first.RegionKey))
}

func TestNewSession_ShiftsBySelectionStart(t *testing.T) {
	t.Parallel()

	// Only "Teh slow dog." was checked; the server reports offset 0 for a
	// typo that sits at buffer offset 15.
	buf := editor.NewMemBuffer("Teh quick fox. Teh slow dog.")
	s := NewSession(buf, SessionOptions{
		Matches:        []languagetool.Match{typoMatch(0, 3, "The")},
		CheckedRegion:  editor.Region{Start: 15, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})

	require.Equal(t, 1, s.Len())
	p := s.Problems()[0]
	assert.Equal(t, 15, p.Offset)
	assert.Equal(t, "Teh", p.Original)
}

func TestNewSession_DropsMatchesOutsideCheckedRegion(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("Teh quick fox.")
	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			// Overflows the 10-byte checked region once shifted.
			typoMatch(8, 6, "nope"),
		},
		CheckedRegion:  editor.Region{Start: 0, End: 10},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})

	assert.Equal(t, 1, s.Len())
}

func TestNewSession_DropsIgnoredScopes(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("prose `teh` prose")
	buf.SetScopes("text.html.markdown", []editor.ScopeSpan{
		{Region: editor.Region{Start: 7, End: 10}, Name: "markup.raw.inline"},
	})

	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(7, 3, "the"),
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		IgnoredScopes:  []string{"markup.raw*"},
		HighlightScope: "comment",
	})

	assert.Equal(t, 0, s.Len())
}

func TestNewSession_ReprojectsAfterConcurrentEdit(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("Teh quick fox.")
	sent := buf.Revision()

	// The user typed at the top of the file while the check was in flight.
	buf.Insert(0, "## ")

	s := NewSession(buf, SessionOptions{
		Matches:        []languagetool.Match{typoMatch(0, 3, "The")},
		CheckedRegion:  editor.Region{Start: 0, End: 14},
		SinceRevision:  sent,
		HighlightScope: "comment",
	})

	require.Equal(t, 1, s.Len())
	p := s.Problems()[0]
	assert.Equal(t, editor.Region{Start: 3, End: 6}, s.Region(p))
	assert.Equal(t, "Teh", p.Original)
	assert.False(t, Solved(buf, p))
}

func TestApply_FixScenario(t *testing.T) {
	t.Parallel()

	// Buffer "Teh quick fox." checked whole-buffer; the server returns one
	// match at offset 0, length 3, replacement "The".
	buf := editor.NewMemBuffer("Teh quick fox.")
	s := NewSession(buf, SessionOptions{
		Matches:        []languagetool.Match{typoMatch(0, 3, "The")},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 1, s.Len())

	p := s.Problems()[0]
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, 3, p.Length)

	s.Apply(p, p.Replacements[0])

	assert.Equal(t, "The quick fox.", buf.Content())
	assert.Equal(t, editor.Region{Start: 0, End: 0}, s.Region(p),
		"marker must collapse to an empty span at position 0")
	assert.True(t, Solved(buf, p))
}

func TestApplyFirstSuggestions_FixesAll(t *testing.T) {
	t.Parallel()

	buf, s := twoTyposBuffer(t)

	applied, skipped := s.ApplyFirstSuggestions()

	assert.Equal(t, 2, applied)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "The quick fox. The slow dog.", buf.Content())
	assert.Empty(t, s.Unsolved())

	// A second pass finds nothing left to fix.
	applied, skipped = s.ApplyFirstSuggestions()
	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, skipped)
}

func TestApplyFirstSuggestions_SkipsOverlapping(t *testing.T) {
	t.Parallel()

	// A spelling match and a duplication match cover the same words. The
	// narrower correction starts first after sorting and wins; the wider
	// one is skipped rather than clobbering the fresh fix.
	buf := editor.NewMemBuffer("Teh teh fox.")
	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			typoMatch(0, 7, "The"),
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 2, s.Len())

	applied, skipped := s.ApplyFirstSuggestions()

	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "The teh fox.", buf.Content())
}

func TestApplyFirstSuggestions_LeavesProblemsWithoutReplacements(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("Teh quick fox.")
	noFix := typoMatch(4, 5)
	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			noFix,
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 2, s.Len())

	applied, skipped := s.ApplyFirstSuggestions()

	assert.Equal(t, 1, applied)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "The quick fox.", buf.Content())
	assert.Len(t, s.Unsolved(), 1, "a problem with no suggestion stays open")
}

func TestIgnore_ClearsEqualProblems(t *testing.T) {
	t.Parallel()

	buf, s := twoTyposBuffer(t)
	problems := s.Problems()

	revBefore := buf.Revision()
	s.Ignore(problems[0])

	assert.True(t, Solved(buf, problems[0]))
	assert.True(t, Solved(buf, problems[1]),
		"ignoring one problem must clear every equal problem")
	assert.Equal(t, revBefore+1, buf.Revision(), "ignore records one undoable edit")
	assert.True(t, buf.Undo())
}

func TestIgnore_LeavesUnequalProblemsAlone(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("Teh quick foxx.")
	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			typoMatch(10, 4, "fox"),
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 2, s.Len())

	problems := s.Problems()
	s.Ignore(problems[0])

	assert.True(t, Solved(buf, problems[0]))
	assert.False(t, Solved(buf, problems[1]))
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	t.Run("next returns the unsolved problem after the offset", func(t *testing.T) {
		t.Parallel()

		_, s := twoTyposBuffer(t)

		p, ok := s.Next(0)
		require.True(t, ok)
		assert.Equal(t, 15, s.Region(p).Start)
	})

	t.Run("next from before both returns the first", func(t *testing.T) {
		t.Parallel()

		_, s := twoTyposBuffer(t)

		p, ok := s.Next(-1)
		require.True(t, ok)
		assert.Equal(t, 0, s.Region(p).Start)
	})

	t.Run("next skips solved problems", func(t *testing.T) {
		t.Parallel()

		buf := editor.NewMemBuffer("Teh quick fox. Soem slow dog.")
		s := NewSession(buf, SessionOptions{
			Matches: []languagetool.Match{
				typoMatch(0, 3, "The"),
				typoMatch(15, 4, "Some"),
			},
			CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
			SinceRevision:  buf.Revision(),
			HighlightScope: "comment",
		})
		problems := s.Problems()
		s.Apply(problems[1], "Some")

		_, ok := s.Next(5)
		assert.False(t, ok, "the only following problem is solved")
	})

	t.Run("next past the last problem finds nothing", func(t *testing.T) {
		t.Parallel()

		_, s := twoTyposBuffer(t)

		_, ok := s.Next(15)
		assert.False(t, ok)
	})

	t.Run("prev returns the unsolved problem before the offset", func(t *testing.T) {
		t.Parallel()

		_, s := twoTyposBuffer(t)

		p, ok := s.Prev(15)
		require.True(t, ok)
		assert.Equal(t, 0, s.Region(p).Start)

		_, ok = s.Prev(0)
		assert.False(t, ok)
	})
}

func TestAt(t *testing.T) {
	t.Parallel()

	_, s := twoTyposBuffer(t)

	p, ok := s.At(16)
	require.True(t, ok)
	assert.Equal(t, 15, s.Region(p).Start)

	_, ok = s.At(15)
	assert.False(t, ok, "containment is strict: the start offset itself does not select")

	_, ok = s.At(10)
	assert.False(t, ok)
}

func TestIgnoreRule(t *testing.T) {
	t.Parallel()

	buf := editor.NewMemBuffer("Teh quick fox. Teh slow dog.")
	grammar := typoMatch(19, 4, "fast")
	grammar.Rule.ID = "AGREEMENT"
	grammar.Rule.Category.Name = "Grammar"

	s := NewSession(buf, SessionOptions{
		Matches: []languagetool.Match{
			typoMatch(0, 3, "The"),
			typoMatch(15, 3, "The"),
			grammar,
		},
		CheckedRegion:  editor.Region{Start: 0, End: buf.Len()},
		SinceRevision:  buf.Revision(),
		HighlightScope: "comment",
	})
	require.Equal(t, 3, s.Len())
	typoKey := s.Problems()[0].RegionKey

	removed := s.IgnoreRule("MORFOLOGIK_RULE_EN_US")

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "AGREEMENT", s.Problems()[0].RuleID)
	assert.Nil(t, buf.Regions(typoKey), "removed problems lose their markers")
}

func TestRefresh_HidesSolvedShowsUnsolved(t *testing.T) {
	t.Parallel()

	buf, s := twoTyposBuffer(t)
	problems := s.Problems()

	// Hand-edit the first typo without going through Apply.
	buf.Replace(editor.Region{Start: 0, End: 3}, "The")

	s.Refresh()

	assert.Equal(t, "", buf.RegionScope(problems[0].RegionKey), "solved marker is hidden")
	assert.Equal(t, "comment", buf.RegionScope(problems[1].RegionKey), "unsolved marker stays visible")

	// Refresh is idempotent.
	s.Refresh()
	assert.Equal(t, "", buf.RegionScope(problems[0].RegionKey))
}

func TestClear(t *testing.T) {
	t.Parallel()

	buf, s := twoTyposBuffer(t)
	keys := []string{s.Problems()[0].RegionKey, s.Problems()[1].RegionKey}

	s.Clear()

	assert.Equal(t, 0, s.Len())
	for _, key := range keys {
		assert.Nil(t, buf.Regions(key))
	}
}
