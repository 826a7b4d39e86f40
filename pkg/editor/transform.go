package editor

// Edit records a single buffer mutation: the bytes at Region were replaced
// by NewText. Edits are kept in the buffer journal so offsets captured at an
// older revision can be re-projected into the current coordinate space.
type Edit struct {
	Region  Region
	NewText string
}

// Delta returns the length change the edit caused.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Region.Len()
}

// transformOffset maps an offset through an edit.
// Rules:
//   - edit entirely before the offset: shift by the length delta
//     (an insertion exactly at the offset pushes it right);
//   - edit at or after the offset: unchanged;
//   - edit spanning the offset: collapse to the end of the new text.
func transformOffset(offset int, e Edit) int {
	switch {
	case e.Region.End <= offset:
		return offset + e.Delta()
	case e.Region.Start >= offset:
		return offset
	default:
		return e.Region.Start + len(e.NewText)
	}
}

// transformOffsetEnd maps a region end through an edit. It differs from
// transformOffset in one case: an insertion exactly at the offset does not
// move it, so a highlight never grows to swallow text typed just past its
// right edge.
func transformOffsetEnd(offset int, e Edit) int {
	switch {
	case e.Region.End < offset:
		return offset + e.Delta()
	case e.Region.Start >= offset:
		return offset
	default:
		return e.Region.Start + len(e.NewText)
	}
}

// transformRegion maps a tracked region through an edit. The start follows
// inserted text, the end stays anchored, and the result is normalized so
// Start <= End.
func transformRegion(r Region, e Edit) Region {
	start := transformOffset(r.Start, e)
	end := transformOffsetEnd(r.End, e)
	if end < start {
		end = start
	}
	return Region{Start: start, End: end}
}

// transformSelection maps a selection through an edit. Both endpoints track
// like carets: insertions at either endpoint push it right.
func transformSelection(r Region, e Edit) Region {
	start := transformOffset(r.Start, e)
	end := transformOffset(r.End, e)
	if end < start {
		end = start
	}
	return Region{Start: start, End: end}
}
