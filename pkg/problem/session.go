package problem

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/fix"
	"github.com/yaklabco/gramlint/pkg/highlight"
	"github.com/yaklabco/gramlint/pkg/languagetool"
)

// SessionOptions configures session construction from raw server matches.
type SessionOptions struct {
	// Matches are the server's matches, in server order.
	Matches []languagetool.Match

	// CheckedRegion is the buffer region the matches refer to, in the
	// coordinate space of revision SinceRevision. Match offsets are
	// relative to its start.
	CheckedRegion editor.Region

	// SinceRevision is the buffer revision when the check was sent.
	// Regions are re-projected through any edits made since.
	SinceRevision int64

	// IgnoredScopes are glob patterns; a problem whose scope names at its
	// region start match any pattern is dropped.
	IgnoredScopes []string

	// HighlightScope styles the problem markers.
	HighlightScope string

	// Language is the language the server checked against, recorded for
	// reporting. With "auto" this is the server's detection result.
	Language string
}

// Session is the problem registry for one check invocation. A new check on
// the same buffer supersedes the previous session; Clear on the old session
// removes its markers first.
type Session struct {
	id       string
	buf      editor.Buffer
	renderer *highlight.Renderer
	problems []Problem
	language string
}

// NewSession maps, filters and registers the matches as tracked problems:
//
//  1. each match becomes a Problem, shifted by the checked region's start;
//  2. problems not fully inside the checked region are dropped;
//  3. regions are re-projected to the current buffer revision;
//  4. problems whose scopes match an ignored pattern are dropped;
//  5. survivors get region keys in server order, an Original snapshot, and
//     a visible marker.
func NewSession(buf editor.Buffer, opts SessionOptions) *Session {
	s := &Session{
		id:       uuid.NewString()[:8],
		buf:      buf,
		renderer: highlight.New(buf, opts.HighlightScope),
		language: opts.Language,
	}

	index := 0
	for _, match := range opts.Matches {
		p := FromMatch(match).Shift(opts.CheckedRegion.Start)

		if !opts.CheckedRegion.ContainsRegion(p.Region()) {
			continue
		}

		region := buf.TransformRegion(p.Region(), opts.SinceRevision)

		if scopeIgnored(buf.ScopeNames(region.Start), opts.IgnoredScopes) {
			continue
		}

		p.RegionKey = fmt.Sprintf("%s/%d", s.id, index)
		p.Original = buf.Text(region)
		s.renderer.Add(p.RegionKey, region)
		s.problems = append(s.problems, p)
		index++
	}

	return s
}

// ID returns the session identifier that namespaces region keys.
func (s *Session) ID() string {
	return s.id
}

// Language returns the language the server checked against.
func (s *Session) Language() string {
	return s.language
}

// Problems returns the tracked problems in server order.
func (s *Session) Problems() []Problem {
	return append([]Problem(nil), s.problems...)
}

// Len returns the number of tracked problems, solved or not.
func (s *Session) Len() int {
	return len(s.problems)
}

// Unsolved returns the problems still present in the buffer.
func (s *Session) Unsolved() []Problem {
	var open []Problem
	for _, p := range s.problems {
		if !Solved(s.buf, p) {
			open = append(open, p)
		}
	}
	return open
}

// Region returns the problem's current marker region.
func (s *Session) Region(p Problem) editor.Region {
	if region, ok := s.renderer.Region(p.RegionKey); ok {
		return region
	}
	return p.Region()
}

// First returns the first unsolved problem in server order.
func (s *Session) First() (Problem, bool) {
	for _, p := range s.problems {
		if !Solved(s.buf, p) {
			return p, true
		}
	}
	return Problem{}, false
}

// Next returns the first unsolved problem, scanning in server order, whose
// region starts strictly after from. The second result is false when none
// exists.
func (s *Session) Next(from int) (Problem, bool) {
	for _, p := range s.problems {
		if Solved(s.buf, p) {
			continue
		}
		if s.Region(p).Start > from {
			return p, true
		}
	}
	return Problem{}, false
}

// Prev returns the first unsolved problem, scanning in reverse server order,
// whose region starts strictly before from.
func (s *Session) Prev(from int) (Problem, bool) {
	for i := len(s.problems) - 1; i >= 0; i-- {
		p := s.problems[i]
		if Solved(s.buf, p) {
			continue
		}
		if s.Region(p).Start < from {
			return p, true
		}
	}
	return Problem{}, false
}

// At returns the unsolved problem whose region strictly contains offset.
func (s *Session) At(offset int) (Problem, bool) {
	for _, p := range s.problems {
		if Solved(s.buf, p) {
			continue
		}
		if s.Region(p).ContainsStrict(offset) {
			return p, true
		}
	}
	return Problem{}, false
}

// Apply replaces the problem's current text with the chosen replacement and
// collapses its marker.
func (s *Session) Apply(p Problem, replacement string) {
	region := s.Region(p)
	s.buf.Replace(region, replacement)
	s.renderer.Collapse(p.RegionKey)
}

// ApplyFirstSuggestions fixes every unsolved problem that offers a
// replacement, taking the first suggestion of each. Candidate edits are
// resolved greedily by region start, so when two corrections overlap the
// earlier one wins and the later is skipped. Returns the number of
// corrections applied and the number skipped as overlapping.
func (s *Session) ApplyFirstSuggestions() (applied, skipped int) {
	type candidate struct {
		p    Problem
		edit fix.TextEdit
	}

	var cands []candidate
	for _, p := range s.problems {
		if Solved(s.buf, p) || len(p.Replacements) == 0 {
			continue
		}
		region := s.Region(p)
		cands = append(cands, candidate{p: p, edit: fix.TextEdit{
			StartOffset: region.Start,
			EndOffset:   region.End,
			NewText:     p.Replacements[0],
		}})
	}
	if len(cands) == 0 {
		return 0, 0
	}

	edits := make([]fix.TextEdit, len(cands))
	for i, c := range cands {
		edits[i] = c.edit
	}
	fix.SortEdits(edits)
	accepted, dropped := fix.FilterConflicts(edits)
	skipped = len(dropped)

	keep := make(map[fix.TextEdit]int, len(accepted))
	for _, e := range accepted {
		keep[e]++
	}

	// Apply in server order. Markers re-project after every splice, so the
	// snapshot offsets in the edits are only used for conflict resolution.
	for _, c := range cands {
		if keep[c.edit] == 0 {
			continue
		}
		keep[c.edit]--
		if Solved(s.buf, c.p) {
			continue
		}
		s.Apply(c.p, c.edit.NewText)
		applied++
	}
	return applied, skipped
}

// Ignore dismisses the problem and every problem equal to it, wherever it
// was detected: markers collapse to empty spans, and one no-op edit is
// recorded so the action occupies an undo step.
func (s *Session) Ignore(p Problem) {
	for _, q := range EqualProblems(s.problems, p) {
		s.renderer.Collapse(q.RegionKey)
	}
	s.buf.Insert(s.buf.Len(), "")
}

// IgnoreRule removes every problem carrying the rule ID from the session,
// erasing their markers. Returns the number removed.
func (s *Session) IgnoreRule(ruleID string) int {
	var kept []Problem
	removed := 0
	for _, p := range s.problems {
		if p.RuleID == ruleID {
			s.renderer.Erase(p.RegionKey)
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.problems = kept
	return removed
}

// Refresh re-evaluates every problem's solved state and restyles its
// marker: unsolved problems are visible, solved ones hidden. The
// recomputation is idempotent and runs after every buffer modification.
func (s *Session) Refresh() {
	for _, p := range s.problems {
		s.renderer.SetVisible(p.RegionKey, !Solved(s.buf, p))
	}
}

// Clear erases every marker and empties the problem list.
func (s *Session) Clear() {
	for _, p := range s.problems {
		s.renderer.Erase(p.RegionKey)
	}
	s.problems = nil
}
