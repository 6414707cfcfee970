// Package history manages the undo/redo timeline for designer commands.
//
// The History type keeps two stacks. Executing a command pushes it onto
// the undo stack and clears the redo stack, so there is a single linear
// timeline with no branches:
//
//	h := history.New(200)
//	h.Execute(ctx, cmd)
//	h.Undo(ctx)
//	h.Redo(ctx)
//
// # Batching
//
// Commands executed between BeginBatch and EndBatch are collected into a
// single macro that undoes as one unit:
//
//	h.BeginBatch("Align Left")
//	// ... several commands ...
//	h.EndBatch()
//
// An open batch expires automatically when the gap since its last command
// exceeds the batch timeout; the check runs before the next command is
// added, so a stale batch never absorbs an unrelated edit.
//
// # Merging
//
// When merging is enabled and no batch is open, a freshly executed
// command may be absorbed into the previous history entry instead of
// creating a new one (continuous drags, resizes, and property sweeps
// coalesce into single undo steps). The absorbed command has already
// run, so the document state is exact; only the history granularity
// changes.
//
// # Failure handling
//
// A command that returns an error or cancellation never enters history.
// If an undo or redo fails, the command is pushed back onto the stack it
// came from, so the timeline stays consistent with the document.
package history
