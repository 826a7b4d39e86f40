// Package editor defines the host port: the buffer, region-highlighting,
// selection, scope and messaging surface that problem tracking runs against,
// plus a complete in-memory implementation.
package editor

import "fmt"

// Region is a half-open byte range [Start, End) within a buffer.
type Region struct {
	Start int
	End   int
}

// NewRegion creates a region, swapping the bounds if they are reversed.
func NewRegion(start, end int) Region {
	if end < start {
		start, end = end, start
	}
	return Region{Start: start, End: end}
}

// Len returns the number of bytes the region covers.
func (r Region) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the region covers no bytes.
func (r Region) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains reports whether the offset lies within [Start, End).
// An empty region contains nothing.
func (r Region) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsStrict reports whether the offset lies strictly inside the region,
// excluding both endpoints.
func (r Region) ContainsStrict(offset int) bool {
	return offset > r.Start && offset < r.End
}

// ContainsRegion reports whether other lies entirely within r.
func (r Region) ContainsRegion(other Region) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Intersects reports whether the two regions share at least one byte.
func (r Region) Intersects(other Region) bool {
	return r.Start < other.End && other.Start < r.End
}

// Clamp restricts the region to [0, limit].
func (r Region) Clamp(limit int) Region {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if start > limit {
		start = limit
	}
	if end < start {
		end = start
	}
	return Region{Start: start, End: end}
}

func (r Region) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
