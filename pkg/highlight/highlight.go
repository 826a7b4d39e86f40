// Package highlight draws and maintains problem markers on an editor buffer.
// Markers are named region sets: visible ones carry the configured scope and
// an outlined style; resolved ones collapse to an empty span so lifecycle
// state stays queryable after the text is gone.
package highlight

import "github.com/yaklabco/gramlint/pkg/editor"

// DefaultScope is the style class used for problem regions when the
// configuration does not name one.
const DefaultScope = "comment"

// Renderer manages highlight region sets on one buffer.
type Renderer struct {
	buf   editor.Buffer
	scope string
}

// New creates a renderer using scope for visible markers.
func New(buf editor.Buffer, scope string) *Renderer {
	if scope == "" {
		scope = DefaultScope
	}
	return &Renderer{buf: buf, scope: scope}
}

// Scope returns the configured highlight scope.
func (r *Renderer) Scope() string {
	return r.scope
}

// Add registers a visible, outlined marker for the region under key.
func (r *Renderer) Add(key string, region editor.Region) {
	r.buf.AddRegions(key, []editor.Region{region}, r.scope, editor.DrawOutlined)
}

// Region returns the marker's current region. The second result is false
// when no marker exists under the key.
func (r *Renderer) Region(key string) (editor.Region, bool) {
	regions := r.buf.Regions(key)
	if len(regions) == 0 {
		return editor.Region{}, false
	}
	return regions[0], true
}

// Collapse shrinks the marker to an empty, invisible span anchored at its
// current start. The marker is not deleted: an empty region is how a
// resolved problem stays queryable.
func (r *Renderer) Collapse(key string) {
	region, ok := r.Region(key)
	if !ok {
		return
	}
	anchor := editor.Region{Start: region.Start, End: region.Start}
	r.buf.AddRegions(key, []editor.Region{anchor}, "", editor.DrawOutlined)
}

// SetVisible restyles the marker in place: visible markers use the
// configured scope, hidden ones an empty scope. The region itself is
// untouched, so solved-ness checks keep working.
func (r *Renderer) SetVisible(key string, visible bool) {
	regions := r.buf.Regions(key)
	if len(regions) == 0 {
		return
	}
	scope := ""
	if visible {
		scope = r.scope
	}
	r.buf.AddRegions(key, regions, scope, editor.DrawOutlined)
}

// Erase removes the marker entirely.
func (r *Renderer) Erase(key string) {
	r.buf.EraseRegions(key)
}
