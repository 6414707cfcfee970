// Package command implements reversible design-document mutations for the
// visual designer.
//
// Every change to the document — moving or resizing a component, adding or
// deleting one, editing a property — is a Command: a unit of work that can
// be executed, undone, described, and sometimes merged with its
// predecessor. Commands capture enough before/after state at construction
// time to be exact inverses of themselves.
//
// # Commands
//
// Built-in commands:
//   - MoveCommand: reposition one or more components
//   - ResizeCommand: resize a component, optionally repositioning it
//   - AddCommand: insert a new component built from a serialized spec
//   - DeleteCommand: remove one or more components, keeping everything
//     needed to restore them
//   - PropertyCommand: change a single component property
//   - MacroCommand: an ordered group executed forward and undone in
//     reverse as one atomic unit
//
// # Index renumbering
//
// Components are addressed by their index in the document's ordered list,
// so AddCommand and DeleteCommand must renumber every index-keyed
// structure (layout maps, selection) atomically with the structural
// change. DeleteCommand processes multiple targets highest-index-first on
// execute and lowest-index-first on undo so that captured indices stay
// valid while it works.
//
// # Merging
//
// Continuous gestures (a drag, a slider sweep) produce streams of small
// commands. Move, Resize and Property commands merge with a compatible
// predecessor: the merged entry keeps the original "old" state and adopts
// the latest "new" state, so a single undo restores the pre-gesture state.
//
// # Results and events
//
// Commands report a Result (success, warning, error, or cancelled) rather
// than a Go error; errors never leave the document partially mutated.
// Execution and undo publish events to the sink injected into the Context
// (no-op by default).
package command
