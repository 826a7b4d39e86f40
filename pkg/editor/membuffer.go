package editor

import (
	"sort"

	"github.com/yaklabco/gramlint/pkg/fix"
)

// regionSet is one named group of highlight regions.
type regionSet struct {
	regions []Region
	scope   string
	style   DrawStyle
}

// MemBuffer is the in-memory Buffer implementation used by the CLI, the fix
// TUI and tests. It keeps an edit journal so offsets captured at any earlier
// revision can be re-projected, and an undo stack of inverse edits.
//
// MemBuffer is not safe for concurrent use; all mutation is expected to
// happen on the owning goroutine.
type MemBuffer struct {
	content       []byte
	sel           Region
	sets          map[string]*regionSet
	baseScope     string
	spans         []ScopeSpan
	revision      int64
	cleanRevision int64
	journal       []Edit
	undoStack     []Edit
}

// NewMemBuffer creates a buffer over content with base scope "text.plain".
func NewMemBuffer(content string) *MemBuffer {
	return &MemBuffer{
		content:   []byte(content),
		baseScope: "text.plain",
		sets:      make(map[string]*regionSet),
	}
}

// SetScopes replaces the buffer's scope classification. Spans are tracked
// through subsequent edits like any other region.
func (b *MemBuffer) SetScopes(base string, spans []ScopeSpan) {
	b.baseScope = base
	b.spans = append([]ScopeSpan(nil), spans...)
}

// Len implements Buffer.
func (b *MemBuffer) Len() int {
	return len(b.content)
}

// Content implements Buffer.
func (b *MemBuffer) Content() string {
	return string(b.content)
}

// Text implements Buffer.
func (b *MemBuffer) Text(r Region) string {
	r = r.Clamp(len(b.content))
	return string(b.content[r.Start:r.End])
}

// Replace implements Buffer.
func (b *MemBuffer) Replace(r Region, text string) {
	b.mutate(r, text)
}

// Insert implements Buffer.
func (b *MemBuffer) Insert(offset int, text string) {
	b.mutate(Region{Start: offset, End: offset}, text)
}

// mutate records the edit for undo, then applies it.
func (b *MemBuffer) mutate(r Region, text string) {
	r = r.Clamp(len(b.content))
	removed := string(b.content[r.Start:r.End])

	b.apply(Edit{Region: r, NewText: text})

	inverse := Edit{
		Region:  Region{Start: r.Start, End: r.Start + len(text)},
		NewText: removed,
	}
	b.undoStack = append(b.undoStack, inverse)
}

// apply splices the edit into the content, journals it, and re-projects
// every tracked region, scope span and the selection.
func (b *MemBuffer) apply(e Edit) {
	b.content = fix.ApplyEdits(b.content, []fix.TextEdit{{
		StartOffset: e.Region.Start,
		EndOffset:   e.Region.End,
		NewText:     e.NewText,
	}})

	b.journal = append(b.journal, e)
	b.revision++

	for _, set := range b.sets {
		for i, reg := range set.regions {
			set.regions[i] = transformRegion(reg, e)
		}
	}
	for i, span := range b.spans {
		b.spans[i].Region = transformRegion(span.Region, e)
	}
	b.sel = transformSelection(b.sel, e)
}

// Undo implements Buffer. The undone edit still advances the revision and
// enters the journal, so re-projection stays consistent.
func (b *MemBuffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	inverse := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.apply(inverse)
	return true
}

// Selection implements Buffer.
func (b *MemBuffer) Selection() Region {
	return b.sel
}

// Select implements Buffer.
func (b *MemBuffer) Select(r Region) {
	b.sel = r.Clamp(len(b.content))
}

// AddRegions implements Buffer.
func (b *MemBuffer) AddRegions(key string, regions []Region, scope string, style DrawStyle) {
	b.sets[key] = &regionSet{
		regions: append([]Region(nil), regions...),
		scope:   scope,
		style:   style,
	}
}

// Regions implements Buffer.
func (b *MemBuffer) Regions(key string) []Region {
	set, ok := b.sets[key]
	if !ok {
		return nil
	}
	return append([]Region(nil), set.regions...)
}

// RegionScope returns the scope a region set was registered with.
func (b *MemBuffer) RegionScope(key string) string {
	set, ok := b.sets[key]
	if !ok {
		return ""
	}
	return set.scope
}

// RegionStyle returns the draw style a region set was registered with.
func (b *MemBuffer) RegionStyle(key string) DrawStyle {
	set, ok := b.sets[key]
	if !ok {
		return DrawOutlined
	}
	return set.style
}

// EraseRegions implements Buffer.
func (b *MemBuffer) EraseRegions(key string) {
	delete(b.sets, key)
}

// RegionKeys implements Buffer.
func (b *MemBuffer) RegionKeys() []string {
	keys := make([]string, 0, len(b.sets))
	for key := range b.sets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ScopeNames implements Buffer.
func (b *MemBuffer) ScopeNames(offset int) []string {
	names := []string{b.baseScope}
	for _, span := range b.spans {
		if span.Region.Contains(offset) {
			names = append(names, span.Name)
		}
	}
	return names
}

// Revision implements Buffer.
func (b *MemBuffer) Revision() int64 {
	return b.revision
}

// TransformRegion implements Buffer by replaying the journal entries
// recorded after the given revision.
func (b *MemBuffer) TransformRegion(r Region, since int64) Region {
	if since < 0 {
		since = 0
	}
	if since > int64(len(b.journal)) {
		return r
	}
	for _, e := range b.journal[since:] {
		r = transformRegion(r, e)
	}
	return r
}

// Dirty implements Buffer.
func (b *MemBuffer) Dirty() bool {
	return b.revision != b.cleanRevision
}

// MarkClean records the current revision as saved.
func (b *MemBuffer) MarkClean() {
	b.cleanRevision = b.revision
}
