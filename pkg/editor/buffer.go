package editor

// DrawStyle selects how a highlight region is rendered by the host.
type DrawStyle int

const (
	// DrawOutlined draws the region border without filling it.
	DrawOutlined DrawStyle = iota

	// DrawFilled fills the region background.
	DrawFilled
)

func (s DrawStyle) String() string {
	switch s {
	case DrawFilled:
		return "filled"
	default:
		return "outlined"
	}
}

// ScopeSpan labels a byte range with a scope name (e.g. "markup.raw.block").
// Scope names are what ignored-scope patterns match against.
type ScopeSpan struct {
	Region Region
	Name   string
}

// Buffer is the host text-buffer surface problem tracking runs against.
// Offsets are bytes; all regions are half-open.
type Buffer interface {
	// Len returns the buffer length in bytes.
	Len() int

	// Content returns the full buffer text.
	Content() string

	// Text returns the text covered by the region, clamped to the buffer.
	Text(r Region) string

	// Replace substitutes the region's bytes with text, re-projecting all
	// tracked regions and the selection.
	Replace(r Region, text string)

	// Insert places text at the offset. Insert(Len(), "") is the no-op
	// edit recorded to make non-textual actions undoable.
	Insert(offset int, text string)

	// Selection returns the current selection; empty means a caret.
	Selection() Region

	// Select moves the selection.
	Select(r Region)

	// AddRegions registers (or replaces) a named highlight region set.
	// An empty scope hides the set without forgetting it.
	AddRegions(key string, regions []Region, scope string, style DrawStyle)

	// Regions returns the current regions under the key, nil when absent.
	Regions(key string) []Region

	// EraseRegions removes the named region set.
	EraseRegions(key string)

	// RegionKeys lists registered region-set keys in sorted order.
	RegionKeys() []string

	// ScopeNames returns every scope name in effect at the offset,
	// base scope first.
	ScopeNames(offset int) []string

	// Revision returns the edit counter; it increases by one per mutation.
	Revision() int64

	// TransformRegion re-projects a region captured at an older revision
	// into the current coordinate space.
	TransformRegion(r Region, since int64) Region

	// Undo reverses the most recent edit. Returns false when there is
	// nothing to undo.
	Undo() bool

	// Dirty reports whether the buffer has unsaved modifications.
	Dirty() bool
}

// Host is the messaging surface of the editor: transient status text, async
// error display, a details panel, and a busy indicator for long operations.
type Host interface {
	// StatusMessage shows transient, non-blocking text.
	StatusMessage(msg string)

	// ErrorMessage surfaces a failure asynchronously; safe to call from
	// any goroutine.
	ErrorMessage(msg string)

	// ShowPanel displays blocking detail text until hidden or replaced.
	ShowPanel(text string)

	// HidePanel dismisses the panel if one is open.
	HidePanel()

	// Activity shows a busy indicator labelled label; the returned stop
	// function dismisses it.
	Activity(label string) (stop func())
}
