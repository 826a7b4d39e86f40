// Package fix provides text edit types and application logic for buffer
// modification. Buffers splice single edits through ApplyEdits; batch
// corrections go through PrepareEditsFiltered so overlapping suggestions
// cannot clobber each other.
package fix

// TextEdit represents a single text replacement in a buffer.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}
