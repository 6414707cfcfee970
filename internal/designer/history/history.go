package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/formstorm/internal/designer/command"
)

// Defaults applied when the caller passes zero values.
const (
	DefaultMaxEntries   = 200
	DefaultBatchTimeout = 2 * time.Second
)

// Stats counts history activity since creation. Clear does not reset it.
type Stats struct {
	Executed       int
	Undone         int
	Redone         int
	BatchesCreated int
	Merged         int
}

// History manages the undo/redo stacks for a document.
type History struct {
	mu sync.Mutex

	executed []command.Command
	undone   []command.Command

	// Batching state
	batch   *command.MacroCommand
	lastAdd time.Time

	// Configuration
	maxEntries   int
	batchTimeout time.Duration
	merging      bool

	stats Stats

	// now is swapped out in tests to drive batch expiry.
	now func() time.Time
}

// New creates a history manager. maxEntries <= 0 selects the default.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries:   maxEntries,
		batchTimeout: DefaultBatchTimeout,
		merging:      true,
		now:          time.Now,
	}
}

// Execute runs a command and records it. Successful commands (including
// warnings) enter the open batch if one exists, merge into the previous
// entry when eligible, or push onto the undo stack; in every case the
// redo stack clears. Failed and cancelled commands leave history
// untouched.
func (h *History) Execute(ctx *command.Context, cmd command.Command) command.Result {
	h.mu.Lock()
	h.expireBatchLocked()

	// Merging only applies between the top standalone entry and the
	// incoming command; an open batch owns its commands outright.
	var mergeTarget command.Command
	if h.batch == nil && h.merging && len(h.executed) > 0 {
		if top := h.executed[len(h.executed)-1]; top.CanMergeWith(cmd) {
			mergeTarget = top
		}
	}
	h.mu.Unlock()

	// Run without holding the lock; commands may do arbitrary work. A
	// merge candidate runs with events off so the step announces itself
	// exactly once below, as merged or executed.
	execCtx := ctx
	if mergeTarget != nil {
		execCtx = ctx.Quiet()
	}
	res := cmd.Execute(execCtx)
	if !res.OK() {
		return res
	}

	h.mu.Lock()
	h.undone = nil

	if h.batch != nil {
		h.batch.Add(cmd)
		h.lastAdd = h.now()
		h.mu.Unlock()
		return res
	}

	if mergeTarget != nil &&
		len(h.executed) > 0 && h.executed[len(h.executed)-1] == mergeTarget &&
		mergeTarget.MergeWith(cmd) {
		h.stats.Merged++
		h.mu.Unlock()
		ctx.Emit(command.Event{
			Kind:        command.EventMerged,
			CommandID:   mergeTarget.ID(),
			Description: mergeTarget.Description(),
		})
		return res
	}

	h.pushLocked(cmd)
	h.stats.Executed++
	h.mu.Unlock()
	if mergeTarget != nil {
		// The merge fell through; the suppressed executed event is owed.
		ctx.Emit(command.Event{
			Kind:        command.EventExecuted,
			CommandID:   cmd.ID(),
			Description: cmd.Description(),
		})
	}
	return res
}

// pushLocked appends to the undo stack and enforces the size limit.
func (h *History) pushLocked(cmd command.Command) {
	h.executed = append(h.executed, cmd)
	if len(h.executed) > h.maxEntries {
		excess := len(h.executed) - h.maxEntries
		h.executed = h.executed[excess:]
	}
}

// Undo reverses the most recent command. Any open batch is closed first
// so it undoes as a unit. If the undo fails or is cancelled, the command
// stays on the undo stack.
func (h *History) Undo(ctx *command.Context) command.Result {
	h.mu.Lock()
	h.endBatchLocked()
	if len(h.executed) == 0 {
		h.mu.Unlock()
		return command.Errorf("nothing to undo")
	}
	cmd := h.executed[len(h.executed)-1]
	h.executed = h.executed[:len(h.executed)-1]
	h.mu.Unlock()

	res := cmd.Undo(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if res.OK() {
		h.undone = append(h.undone, cmd)
		h.stats.Undone++
	} else {
		h.executed = append(h.executed, cmd)
	}
	return res
}

// Redo re-applies the most recent undone command. If the redo fails or
// is cancelled, the command stays on the redo stack.
func (h *History) Redo(ctx *command.Context) command.Result {
	h.mu.Lock()
	h.endBatchLocked()
	if len(h.undone) == 0 {
		h.mu.Unlock()
		return command.Errorf("nothing to redo")
	}
	cmd := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.mu.Unlock()

	res := cmd.Execute(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if res.OK() {
		h.executed = append(h.executed, cmd)
		h.stats.Redone++
	} else {
		h.undone = append(h.undone, cmd)
	}
	return res
}

// BeginBatch starts collecting commands into a single undo unit,
// closing any batch already open.
func (h *History) BeginBatch(description string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endBatchLocked()
	h.batch = command.NewMacro(description)
	h.lastAdd = time.Time{}
}

// EndBatch closes the open batch, pushing it as one entry. An empty
// batch is discarded.
func (h *History) EndBatch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endBatchLocked()
}

func (h *History) endBatchLocked() {
	if h.batch == nil {
		return
	}
	if !h.batch.IsEmpty() {
		h.pushLocked(h.batch)
		h.stats.BatchesCreated++
		h.stats.Executed++
	}
	h.batch = nil
}

// expireBatchLocked closes the open batch when the gap since its last
// command exceeds the timeout.
func (h *History) expireBatchLocked() {
	if h.batch == nil || h.lastAdd.IsZero() {
		return
	}
	if h.now().Sub(h.lastAdd) > h.batchTimeout {
		h.endBatchLocked()
	}
}

// CancelBatch discards the open batch, undoing its already-applied
// commands in reverse order. The batch never enters history.
func (h *History) CancelBatch(ctx *command.Context) command.Result {
	h.mu.Lock()
	batch := h.batch
	h.batch = nil
	h.mu.Unlock()

	if batch == nil || batch.IsEmpty() {
		return command.Success()
	}

	cmds := batch.Commands()
	for i := len(cmds) - 1; i >= 0; i-- {
		if res := cmds[i].Undo(ctx); res.IsError() {
			return command.Errorf("cancel batch: %s", res.Message)
		}
	}
	return command.Success()
}

// InBatch reports whether a batch is open.
func (h *History) InBatch() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.batch != nil
}

// Transaction runs fn inside a batch. If fn returns an error or
// cancellation, the commands it executed are rolled back and the batch
// is discarded; otherwise the batch closes as a single undo unit.
func (h *History) Transaction(ctx *command.Context, description string, fn func() command.Result) command.Result {
	h.BeginBatch(description)
	res := fn()
	if !res.OK() {
		if cancel := h.CancelBatch(ctx); cancel.IsError() {
			return cancel
		}
		return res
	}
	h.EndBatch()
	return res
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.executed) > 0
}

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undone) > 0
}

// UndoCount returns the number of undoable entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.executed)
}

// RedoCount returns the number of redoable entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undone)
}

// NextUndoDescription returns the description of the entry Undo would
// reverse.
func (h *History) NextUndoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.executed) == 0 {
		return "", false
	}
	return h.executed[len(h.executed)-1].Description(), true
}

// NextRedoDescription returns the description of the entry Redo would
// re-apply.
func (h *History) NextRedoDescription() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undone) == 0 {
		return "", false
	}
	return h.undone[len(h.undone)-1].Description(), true
}

// Snapshot returns the undo stack as "description (id)" strings, oldest
// first.
func (h *History) Snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.executed))
	for i, cmd := range h.executed {
		out[i] = fmt.Sprintf("%s (%s)", cmd.Description(), cmd.ID())
	}
	return out
}

// Validate drops entries whose commands no longer apply to the document
// and returns how many were removed.
func (h *History) Validate(ctx *command.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	h.executed, removed = retainValid(h.executed, ctx, removed)
	h.undone, removed = retainValid(h.undone, ctx, removed)
	return removed
}

func retainValid(cmds []command.Command, ctx *command.Context, removed int) ([]command.Command, int) {
	kept := cmds[:0]
	for _, cmd := range cmds {
		if cmd.IsValid(ctx) {
			kept = append(kept, cmd)
		} else {
			removed++
		}
	}
	return kept, removed
}

// Clear drops all history and any open batch. Statistics are retained.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.executed = nil
	h.undone = nil
	h.batch = nil
	h.lastAdd = time.Time{}
}

// Stats returns a copy of the activity counters.
func (h *History) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// SetMerging toggles merging of consecutive compatible commands.
func (h *History) SetMerging(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.merging = enabled
}

// SetBatchTimeout changes the idle duration after which an open batch
// auto-closes. Zero or negative selects the default.
func (h *History) SetBatchTimeout(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d <= 0 {
		d = DefaultBatchTimeout
	}
	h.batchTimeout = d
}

// SetMaxEntries changes the undo stack limit, trimming oldest entries if
// needed. Zero or negative selects the default.
func (h *History) SetMaxEntries(max int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.maxEntries = max
	if len(h.executed) > max {
		excess := len(h.executed) - max
		h.executed = h.executed[excess:]
	}
}

// MaxEntries returns the undo stack limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
