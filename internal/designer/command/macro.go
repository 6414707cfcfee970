package command

import "fmt"

// MacroCommand groups an ordered list of commands into one atomic unit.
// Sub-commands execute in order and undo in reverse order. If any
// sub-command fails to execute, the already-applied prefix is undone
// before the error is surfaced, so callers never observe a half-applied
// macro.
type MacroCommand struct {
	base
	description string
	commands    []Command
}

// NewMacro creates an empty macro with a description.
func NewMacro(description string) *MacroCommand {
	return &MacroCommand{
		base: newBase(Metadata{
			Category:  "Composite",
			ShouldLog: true,
		}),
		description: description,
	}
}

// Add appends a sub-command, folding its affected indices into the
// macro's metadata.
func (m *MacroCommand) Add(cmd Command) {
	m.meta.Affected = append(m.meta.Affected, cmd.Metadata().Affected...)
	m.commands = append(m.commands, cmd)
}

// Len returns the number of sub-commands.
func (m *MacroCommand) Len() int {
	return len(m.commands)
}

// IsEmpty reports whether the macro has no sub-commands.
func (m *MacroCommand) IsEmpty() bool {
	return len(m.commands) == 0
}

// Commands returns the sub-commands in execution order.
func (m *MacroCommand) Commands() []Command {
	return m.commands
}

// Execute runs the sub-commands in order. The first error or cancellation
// rolls back the applied prefix (warnings included — they mutated) in
// reverse order and surfaces a single aggregated result. Sub-commands
// run with events off; the macro emits one executed event itself.
func (m *MacroCommand) Execute(ctx *Context) Result {
	sub := ctx.Quiet()
	warned := false
	for i, cmd := range m.commands {
		res := cmd.Execute(sub)
		switch res.Status {
		case StatusError:
			m.rollback(sub, i)
			return Errorf("macro %q failed at step %d: %s", m.description, i+1, res.Message)
		case StatusCancelled:
			m.rollback(sub, i)
			return Cancelled()
		case StatusWarning:
			warned = true
		}
	}

	ctx.Emit(Event{Kind: EventExecuted, CommandID: m.id, Description: m.Description()})
	if warned {
		return Warningf("some operations completed with warnings")
	}
	return Success()
}

// rollback undoes the first count sub-commands in reverse order.
func (m *MacroCommand) rollback(ctx *Context, count int) {
	for i := count - 1; i >= 0; i-- {
		_ = m.commands[i].Undo(ctx)
	}
}

// Undo reverses the sub-commands in reverse order. Any failure aborts
// with an error. As with Execute, the unit emits one undone event.
func (m *MacroCommand) Undo(ctx *Context) Result {
	sub := ctx.Quiet()
	for i := len(m.commands) - 1; i >= 0; i-- {
		if res := m.commands[i].Undo(sub); res.IsError() {
			return Errorf("failed to undo macro %q at step %d: %s", m.description, i+1, res.Message)
		}
	}
	ctx.Emit(Event{Kind: EventUndone, CommandID: m.id, Description: m.Description()})
	return Success()
}

// Description returns the sole sub-command's description when the macro
// has exactly one, otherwise "<desc> (N operations)".
func (m *MacroCommand) Description() string {
	if len(m.commands) == 1 {
		return m.commands[0].Description()
	}
	return fmt.Sprintf("%s (%d operations)", m.description, len(m.commands))
}

// IsValid reports whether every sub-command is still valid.
func (m *MacroCommand) IsValid(ctx *Context) bool {
	for _, cmd := range m.commands {
		if !cmd.IsValid(ctx) {
			return false
		}
	}
	return true
}
