package command

import "github.com/dshills/formstorm/internal/designer/layout"

// ResizeCommand resizes a component. Resizing from a top or left handle
// also moves the component, so the command optionally carries old and new
// positions alongside the sizes.
type ResizeCommand struct {
	base
	index   int
	oldSize layout.Size
	newSize layout.Size
	oldPos  *layout.Position
	newPos  *layout.Position
}

// NewResize creates a resize command. oldPos and newPos may be nil when
// the resize does not move the component.
func NewResize(index int, oldSize, newSize layout.Size, oldPos, newPos *layout.Position) *ResizeCommand {
	return &ResizeCommand{
		base: newBase(Metadata{
			Category:  "Layout",
			Affected:  []int{index},
			ShouldLog: true,
			Tags:      []string{"resize", "layout"},
		}),
		index:   index,
		oldSize: oldSize,
		newSize: newSize,
		oldPos:  clonePos(oldPos),
		newPos:  clonePos(newPos),
	}
}

func clonePos(p *layout.Position) *layout.Position {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Execute writes the new size and, if present, the new position.
func (c *ResizeCommand) Execute(ctx *Context) Result {
	if !ctx.ValidIndex(c.index) {
		return Errorf("resize: component %d does not exist", c.index)
	}
	ctx.Doc.Layout.SetSize(c.index, c.newSize)
	if c.newPos != nil {
		ctx.Doc.Layout.SetPosition(c.index, *c.newPos)
	}
	ctx.Emit(Event{Kind: EventExecuted, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Undo restores the old size and, if present, the old position.
func (c *ResizeCommand) Undo(ctx *Context) Result {
	if !ctx.ValidIndex(c.index) {
		return Errorf("resize: component %d does not exist", c.index)
	}
	ctx.Doc.Layout.SetSize(c.index, c.oldSize)
	if c.oldPos != nil {
		ctx.Doc.Layout.SetPosition(c.index, *c.oldPos)
	}
	ctx.Emit(Event{Kind: EventUndone, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Description returns a fixed description.
func (c *ResizeCommand) Description() string {
	return "Resize Component"
}

// CanMergeWith reports true for a resize of the same component.
func (c *ResizeCommand) CanMergeWith(next Command) bool {
	other, ok := next.(*ResizeCommand)
	return ok && c.index == other.index
}

// MergeWith keeps this command's original size/position and adopts the
// other command's final size/position.
func (c *ResizeCommand) MergeWith(next Command) bool {
	other, ok := next.(*ResizeCommand)
	if !ok || c.index != other.index {
		return false
	}
	c.newSize = other.newSize
	if other.newPos != nil {
		c.newPos = clonePos(other.newPos)
		if c.oldPos == nil {
			// The gesture started moving the component mid-way; the
			// pre-gesture position is the other command's old position.
			c.oldPos = clonePos(other.oldPos)
		}
	}
	return true
}

// IsValid reports whether the target component still exists.
func (c *ResizeCommand) IsValid(ctx *Context) bool {
	return ctx.ValidIndex(c.index)
}
