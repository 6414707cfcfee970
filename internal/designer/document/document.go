// Package document holds the in-memory design document: the ordered
// component list together with its layout geometry and selection state.
// Commands mutate a document exclusively through the command context; the
// document itself only offers bounds-checked structural primitives.
package document

import (
	"errors"
	"fmt"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/layout"
	"github.com/dshills/formstorm/internal/designer/selection"
)

// ErrIndexOutOfRange indicates a component index outside the document.
var ErrIndexOutOfRange = errors.New("component index out of range")

// Document is the editable design document.
type Document struct {
	Components []component.Component
	Layout     *layout.Manager
	Selection  *selection.Set
}

// New creates an empty document.
func New() *Document {
	return &Document{
		Layout:    layout.NewManager(),
		Selection: selection.New(),
	}
}

// Len returns the number of components.
func (d *Document) Len() int {
	return len(d.Components)
}

// ValidIndex reports whether idx addresses an existing component.
func (d *Document) ValidIndex(idx int) bool {
	return idx >= 0 && idx < len(d.Components)
}

// Component returns the component at idx.
func (d *Document) Component(idx int) (component.Component, bool) {
	if !d.ValidIndex(idx) {
		return nil, false
	}
	return d.Components[idx], true
}

// Insert places a component at idx, shifting later components up by one.
// idx may equal Len() to append. Layout and selection are NOT renumbered
// here; structural commands own that, atomically with their geometry
// updates.
func (d *Document) Insert(idx int, c component.Component) error {
	if idx < 0 || idx > len(d.Components) {
		return fmt.Errorf("%w: insert at %d with %d components", ErrIndexOutOfRange, idx, len(d.Components))
	}
	d.Components = append(d.Components, nil)
	copy(d.Components[idx+1:], d.Components[idx:])
	d.Components[idx] = c
	return nil
}

// Remove detaches and returns the component at idx, shifting later
// components down by one. Layout and selection are NOT renumbered here.
func (d *Document) Remove(idx int) (component.Component, error) {
	if !d.ValidIndex(idx) {
		return nil, fmt.Errorf("%w: remove at %d with %d components", ErrIndexOutOfRange, idx, len(d.Components))
	}
	c := d.Components[idx]
	d.Components = append(d.Components[:idx], d.Components[idx+1:]...)
	return c, nil
}

// Snapshot captures an independent copy of the observable document state
// for later comparison. Component state is captured as specs.
type Snapshot struct {
	specs     []component.Spec
	layout    *layout.Manager
	selection *selection.Set
}

// Snapshot captures the current state of the document.
func (d *Document) Snapshot() Snapshot {
	specs := make([]component.Spec, len(d.Components))
	for i, c := range d.Components {
		specs[i] = component.SpecOf(c)
	}
	return Snapshot{
		specs:     specs,
		layout:    d.Layout.Clone(),
		selection: d.Selection.Clone(),
	}
}

// Matches reports whether the document's observable state equals the
// snapshot: same components (type and properties, in order), same layout
// entries, same selection.
func (s Snapshot) Matches(d *Document) bool {
	if len(s.specs) != len(d.Components) {
		return false
	}
	for i, c := range d.Components {
		got := component.SpecOf(c)
		if got.Type != s.specs[i].Type {
			return false
		}
		if len(got.Properties) != len(s.specs[i].Properties) {
			return false
		}
		for k, v := range s.specs[i].Properties {
			if got.Properties[k] != v {
				return false
			}
		}
	}
	return s.layout.Equal(d.Layout) && s.selection.Equal(d.Selection)
}
