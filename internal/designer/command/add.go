package command

import (
	"fmt"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/layout"
)

// AddCommand inserts a new component, built from a serialized spec, at a
// specific index. Inserting renumbers every index-keyed structure at or
// above the insertion point; undoing reverses both the insertion and the
// renumbering.
type AddCommand struct {
	base
	index    int
	position layout.Position
	size     layout.Size
	spec     component.Spec
}

// NewAdd creates an add command inserting a component described by spec
// at index with the given geometry.
func NewAdd(index int, pos layout.Position, size layout.Size, spec component.Spec) *AddCommand {
	return &AddCommand{
		base: newBase(Metadata{
			Category:  "Components",
			Affected:  []int{index},
			ShouldLog: true,
			Tags:      []string{"add", "component"},
		}),
		index:    index,
		position: pos,
		size:     size,
		spec:     spec,
	}
}

// Execute builds the component and inserts it. Every layout and selection
// index at or above the insertion point shifts up by one, atomically with
// the insertion. Nothing is mutated on error.
func (c *AddCommand) Execute(ctx *Context) Result {
	if c.index < 0 || c.index > ctx.Doc.Len() {
		return Errorf("add: index %d out of range (0..%d)", c.index, ctx.Doc.Len())
	}
	comp, err := ctx.Factory.New(c.spec)
	if err != nil {
		return Errorf("add: %v", err)
	}

	ctx.Doc.Layout.ShiftAfterInsert(c.index)
	ctx.Doc.Selection.ShiftAfterInsert(c.index)
	if err := ctx.Doc.Insert(c.index, comp); err != nil {
		// Bounds were checked above; keep the renumbering consistent
		// anyway if the document rejects the insert.
		ctx.Doc.Layout.ShiftAfterRemove(c.index)
		ctx.Doc.Selection.ShiftAfterRemove(c.index)
		return Errorf("add: %v", err)
	}
	ctx.Doc.Layout.SetPosition(c.index, c.position)
	ctx.Doc.Layout.SetSize(c.index, c.size)

	ctx.Emit(Event{Kind: EventExecuted, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Undo removes the inserted component and shifts every index above the
// insertion point back down.
func (c *AddCommand) Undo(ctx *Context) Result {
	if !ctx.ValidIndex(c.index) {
		return Errorf("add undo: component %d does not exist", c.index)
	}
	if _, err := ctx.Doc.Remove(c.index); err != nil {
		return Errorf("add undo: %v", err)
	}
	ctx.Doc.Layout.Remove(c.index)
	ctx.Doc.Layout.ShiftAfterRemove(c.index)
	ctx.Doc.Selection.ShiftAfterRemove(c.index)

	ctx.Emit(Event{Kind: EventUndone, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Description names the added widget type.
func (c *AddCommand) Description() string {
	return fmt.Sprintf("Add %s", c.spec.Type)
}
