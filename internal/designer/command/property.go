package command

import "fmt"

// PropertyCommand changes a single component property, capturing the old
// value for undo.
type PropertyCommand struct {
	base
	index    int
	property string
	oldValue string
	newValue string
}

// NewProperty creates a property-change command.
func NewProperty(index int, property, oldValue, newValue string) *PropertyCommand {
	return &PropertyCommand{
		base: newBase(Metadata{
			Category:  "Properties",
			Affected:  []int{index},
			ShouldLog: true,
			Tags:      []string{"property", "change"},
		}),
		index:    index,
		property: property,
		oldValue: oldValue,
		newValue: newValue,
	}
}

// Execute sets the new property value.
func (c *PropertyCommand) Execute(ctx *Context) Result {
	return c.apply(ctx, c.newValue, EventExecuted)
}

// Undo restores the old property value.
func (c *PropertyCommand) Undo(ctx *Context) Result {
	return c.apply(ctx, c.oldValue, EventUndone)
}

func (c *PropertyCommand) apply(ctx *Context, value string, kind EventKind) Result {
	comp, ok := ctx.Component(c.index)
	if !ok {
		return Errorf("property: component %d does not exist", c.index)
	}
	if !comp.SetProperty(c.property, value) {
		return Errorf("property: %s has no property %q", comp.Name(), c.property)
	}
	ctx.Emit(Event{Kind: kind, CommandID: c.id, Description: c.Description()})
	return Success()
}

// Description names the changed property.
func (c *PropertyCommand) Description() string {
	return fmt.Sprintf("Change %s Property", c.property)
}

// CanMergeWith reports true for a change to the same property of the same
// component, so continuous edits (a slider sweep, keystrokes in an
// inspector field) coalesce.
func (c *PropertyCommand) CanMergeWith(next Command) bool {
	other, ok := next.(*PropertyCommand)
	return ok && c.index == other.index && c.property == other.property
}

// MergeWith keeps this command's original value and adopts the other
// command's final value.
func (c *PropertyCommand) MergeWith(next Command) bool {
	other, ok := next.(*PropertyCommand)
	if !ok || c.index != other.index || c.property != other.property {
		return false
	}
	c.newValue = other.newValue
	return true
}

// IsValid reports whether the target component still exists.
func (c *PropertyCommand) IsValid(ctx *Context) bool {
	return ctx.ValidIndex(c.index)
}
