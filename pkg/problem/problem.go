// Package problem turns server matches into tracked, navigable problems and
// maintains their lifecycle for one check session: solved detection, ignore
// and fix actions, and forward/backward navigation.
package problem

import (
	"path"

	"github.com/yaklabco/gramlint/pkg/editor"
	"github.com/yaklabco/gramlint/pkg/languagetool"
)

// NoMoreMessage is the status text shown when navigation finds no further
// unsolved problem in the requested direction.
const NoMoreMessage = "no further language problems to fix"

// Problem is the editor-coordinate representation of one server match.
// The record itself is immutable after session construction; liveness
// ("solved") is always derived from current buffer state, never stored.
type Problem struct {
	// Category is the server's rule category name (e.g. "Possible Typo").
	Category string

	// Message describes the issue.
	Message string

	// Replacements are suggested corrections, in server order.
	Replacements []string

	// RuleID identifies the server-side rule.
	RuleID string

	// URLs are reference links explaining the rule, possibly empty.
	URLs []string

	// Offset is the byte offset at detection time, relative to the whole
	// buffer (the checked-excerpt shift is already applied).
	Offset int

	// Length is the byte length of the flagged span at detection time.
	Length int

	// RegionKey names the highlight marker tracking this problem.
	// Empty until the problem joins a session.
	RegionKey string

	// Original is the flagged text captured when the marker was placed.
	Original string
}

// FromMatch maps a server match onto a Problem with an unshifted offset.
func FromMatch(m languagetool.Match) Problem {
	replacements := make([]string, 0, len(m.Replacements))
	for _, r := range m.Replacements {
		replacements = append(replacements, r.Value)
	}

	urls := make([]string, 0, len(m.Rule.URLs))
	for _, u := range m.Rule.URLs {
		urls = append(urls, u.Value)
	}

	return Problem{
		Category:     m.Rule.Category.Name,
		Message:      m.Message,
		Replacements: replacements,
		RuleID:       m.Rule.ID,
		URLs:         urls,
		Offset:       m.Offset,
		Length:       m.Length,
	}
}

// Shift returns a copy with the offset moved by delta, converting
// excerpt-relative offsets to buffer-absolute ones.
func (p Problem) Shift(delta int) Problem {
	p.Offset += delta
	return p
}

// Region returns the detection-time region.
func (p Problem) Region() editor.Region {
	return editor.Region{Start: p.Offset, End: p.Offset + p.Length}
}

// Equal reports whether two problems are the same issue detected at
// (possibly) different locations: same category and same original text.
// Offsets, rule IDs and messages do not participate.
func Equal(a, b Problem) bool {
	return a.Category == b.Category && a.Original == b.Original
}

// EqualProblems returns every problem in list equal to p, including p
// itself when present.
func EqualProblems(list []Problem, p Problem) []Problem {
	var equal []Problem
	for _, candidate := range list {
		if Equal(candidate, p) {
			equal = append(equal, candidate)
		}
	}
	return equal
}

// Solved reports whether the problem has been edited away: its marker is
// gone, its region is empty, or the region's current text no longer matches
// the original snapshot.
func Solved(buf editor.Buffer, p Problem) bool {
	regions := buf.Regions(p.RegionKey)
	if len(regions) == 0 {
		return true
	}
	region := regions[0]
	if region.IsEmpty() {
		return true
	}
	return buf.Text(region) != p.Original
}

// scopeIgnored reports whether any scope name matches any ignore pattern.
// Patterns use glob syntax; every name is tested against every pattern.
func scopeIgnored(names, patterns []string) bool {
	for _, pattern := range patterns {
		for _, name := range names {
			if ok, err := path.Match(pattern, name); err == nil && ok {
				return true
			}
		}
	}
	return false
}
