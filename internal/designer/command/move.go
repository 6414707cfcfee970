package command

import (
	"fmt"

	"github.com/dshills/formstorm/internal/designer/layout"
)

// MoveCommand repositions one or more components. It captures the old and
// new position of each target so the move is exactly reversible.
type MoveCommand struct {
	base
	indices []int
	oldPos  []layout.Position
	newPos  []layout.Position
}

// NewMove creates a move command for the given component indices.
// indices, oldPos and newPos must be parallel slices.
func NewMove(indices []int, oldPos, newPos []layout.Position) *MoveCommand {
	return &MoveCommand{
		base: newBase(Metadata{
			Category:  "Layout",
			Affected:  append([]int(nil), indices...),
			ShouldLog: true,
			Tags:      []string{"movement", "layout"},
		}),
		indices: append([]int(nil), indices...),
		oldPos:  append([]layout.Position(nil), oldPos...),
		newPos:  append([]layout.Position(nil), newPos...),
	}
}

// Execute writes the new positions. On any invalid input nothing is
// mutated.
func (c *MoveCommand) Execute(ctx *Context) Result {
	if res := c.check(ctx); res.IsError() {
		return res
	}
	for i, idx := range c.indices {
		ctx.Doc.Layout.SetPosition(idx, c.newPos[i])
	}
	ctx.Emit(Event{Kind: EventExecuted, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Undo restores the old positions.
func (c *MoveCommand) Undo(ctx *Context) Result {
	if res := c.check(ctx); res.IsError() {
		return res
	}
	for i, idx := range c.indices {
		ctx.Doc.Layout.SetPosition(idx, c.oldPos[i])
	}
	ctx.Emit(Event{Kind: EventUndone, CommandID: c.id, Description: c.Description()})
	return Success()
}

func (c *MoveCommand) check(ctx *Context) Result {
	if len(c.indices) != len(c.oldPos) || len(c.indices) != len(c.newPos) {
		return Errorf("move: %d indices with %d/%d positions", len(c.indices), len(c.oldPos), len(c.newPos))
	}
	for _, idx := range c.indices {
		if !ctx.ValidIndex(idx) {
			return Errorf("move: component %d does not exist", idx)
		}
	}
	return Success()
}

// Description returns "Move Component" or "Move N Components".
func (c *MoveCommand) Description() string {
	if len(c.indices) == 1 {
		return "Move Component"
	}
	return fmt.Sprintf("Move %d Components", len(c.indices))
}

// CanMergeWith reports true for a move over the same index set, so a
// continuous drag coalesces into one history entry.
func (c *MoveCommand) CanMergeWith(next Command) bool {
	other, ok := next.(*MoveCommand)
	return ok && equalIndices(c.indices, other.indices)
}

// MergeWith keeps this command's original positions and adopts the other
// command's final positions.
func (c *MoveCommand) MergeWith(next Command) bool {
	other, ok := next.(*MoveCommand)
	if !ok || !equalIndices(c.indices, other.indices) {
		return false
	}
	c.newPos = append([]layout.Position(nil), other.newPos...)
	return true
}

// IsValid reports whether every target component still exists.
func (c *MoveCommand) IsValid(ctx *Context) bool {
	for _, idx := range c.indices {
		if !ctx.ValidIndex(idx) {
			return false
		}
	}
	return true
}

func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
