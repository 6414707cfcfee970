package command

import (
	"fmt"
	"sort"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/layout"
)

// DeleteCommand removes one or more components. For each target it
// captures the geometry, the serialized spec, and the detached component
// instance itself, so undo restores the document exactly.
type DeleteCommand struct {
	base
	entries []deleteEntry
}

type deleteEntry struct {
	index    int
	position layout.Position
	size     layout.Size
	hasPos   bool
	hasSize  bool
	spec     component.Spec
	detached component.Component
	selected bool
	primary  bool
}

// NewDelete creates a delete command for the given component indices.
// Duplicate indices are collapsed.
func NewDelete(indices []int) *DeleteCommand {
	seen := make(map[int]struct{}, len(indices))
	entries := make([]deleteEntry, 0, len(indices))
	affected := make([]int, 0, len(indices))
	for _, idx := range indices {
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		entries = append(entries, deleteEntry{index: idx})
		affected = append(affected, idx)
	}
	return &DeleteCommand{
		base: newBase(Metadata{
			Category:  "Components",
			Affected:  affected,
			ShouldLog: true,
			Tags:      []string{"delete", "component"},
		}),
		entries: entries,
	}
}

// Execute removes the targets in descending index order so that captured
// indices stay valid while earlier removals renumber the document.
// Nothing is mutated if any target is out of range.
func (c *DeleteCommand) Execute(ctx *Context) Result {
	if len(c.entries) == 0 {
		return Errorf("delete: no targets")
	}
	for _, e := range c.entries {
		if !ctx.ValidIndex(e.index) {
			return Errorf("delete: component %d does not exist", e.index)
		}
	}

	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].index > c.entries[j].index })

	for i := range c.entries {
		e := &c.entries[i]

		// A component may have no stored geometry yet; record presence so
		// undo does not invent entries the layout never held.
		e.position, e.hasPos = ctx.Doc.Layout.Position(e.index)
		e.size, e.hasSize = ctx.Doc.Layout.Size(e.index)
		e.selected = ctx.Doc.Selection.Contains(e.index)
		if prim, ok := ctx.Doc.Selection.Primary(); ok && prim == e.index {
			e.primary = true
		}

		detached, err := ctx.Doc.Remove(e.index)
		if err != nil {
			return Errorf("delete: %v", err)
		}
		e.detached = detached
		e.spec = component.SpecOf(detached)

		ctx.Doc.Layout.Remove(e.index)
		ctx.Doc.Layout.ShiftAfterRemove(e.index)
		ctx.Doc.Selection.ShiftAfterRemove(e.index)
	}

	ctx.Emit(Event{Kind: EventExecuted, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Undo reinserts the targets in ascending index order, restoring
// geometry and selection state. The detached instance is reused when
// available; otherwise the component is rebuilt from its spec.
func (c *DeleteCommand) Undo(ctx *Context) Result {
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].index < c.entries[j].index })

	for i := range c.entries {
		e := &c.entries[i]

		comp := e.detached
		if comp == nil {
			rebuilt, err := ctx.Factory.New(e.spec)
			if err != nil {
				return Errorf("delete undo: %v", err)
			}
			comp = rebuilt
		}

		ctx.Doc.Layout.ShiftAfterInsert(e.index)
		ctx.Doc.Selection.ShiftAfterInsert(e.index)
		if err := ctx.Doc.Insert(e.index, comp); err != nil {
			return Errorf("delete undo: %v", err)
		}
		if e.hasPos {
			ctx.Doc.Layout.SetPosition(e.index, e.position)
		}
		if e.hasSize {
			ctx.Doc.Layout.SetSize(e.index, e.size)
		}
		if e.selected {
			ctx.Doc.Selection.Add(e.index)
		}
		if e.primary {
			ctx.Doc.Selection.SetPrimary(e.index)
		}
		e.detached = nil
	}

	ctx.Emit(Event{Kind: EventUndone, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Description returns "Delete Component" or "Delete N Components".
func (c *DeleteCommand) Description() string {
	if len(c.entries) == 1 {
		return "Delete Component"
	}
	return fmt.Sprintf("Delete %d Components", len(c.entries))
}

// IsValid reports whether every not-yet-deleted target still exists.
// After execution the command holds detached instances and is always
// restorable, so it stays valid.
func (c *DeleteCommand) IsValid(ctx *Context) bool {
	for i := range c.entries {
		e := &c.entries[i]
		if e.detached == nil && e.spec.Type == "" && !ctx.ValidIndex(e.index) {
			return false
		}
	}
	return true
}
