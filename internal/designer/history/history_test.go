package history

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/formstorm/internal/designer/command"
	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/document"
	"github.com/dshills/formstorm/internal/designer/layout"
)

func newTestContext() *command.Context {
	doc := document.New()
	_ = doc.Insert(0, component.NewButton("Test"))
	doc.Layout.SetPosition(0, layout.Pos(0, 0))
	doc.Layout.SetSize(0, layout.Sz(100, 32))
	return command.NewContext(doc)
}

func moveTo(x, y, fromX, fromY float64) command.Command {
	return command.NewMove([]int{0},
		[]layout.Position{layout.Pos(fromX, fromY)},
		[]layout.Position{layout.Pos(x, y)})
}

// stubCommand returns canned results, for driving failure paths.
type stubCommand struct {
	id         uuid.UUID
	execResult command.Result
	undoResult command.Result
	valid      bool
}

func newStub(exec, undo command.Result) *stubCommand {
	return &stubCommand{id: uuid.New(), execResult: exec, undoResult: undo, valid: true}
}

func (s *stubCommand) Execute(*command.Context) command.Result { return s.execResult }
func (s *stubCommand) Undo(*command.Context) command.Result    { return s.undoResult }
func (s *stubCommand) ID() uuid.UUID                           { return s.id }
func (s *stubCommand) Description() string                     { return "Stub" }
func (s *stubCommand) Metadata() command.Metadata              { return command.Metadata{} }
func (s *stubCommand) CanMergeWith(command.Command) bool       { return false }
func (s *stubCommand) MergeWith(command.Command) bool          { return false }
func (s *stubCommand) IsValid(*command.Context) bool           { return s.valid }

func TestExecuteUndoRedoRoundTrip(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	if res := h.Execute(ctx, moveTo(50, 50, 0, 0)); !res.OK() {
		t.Fatalf("Execute: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(50, 50) {
		t.Fatalf("position = %v", p)
	}

	if res := h.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(0, 0) {
		t.Fatalf("position after undo = %v", p)
	}

	if res := h.Redo(ctx); !res.OK() {
		t.Fatalf("Redo: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(50, 50) {
		t.Fatalf("position after redo = %v", p)
	}
}

func TestEmptyStacks(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	if res := h.Undo(ctx); !res.IsError() {
		t.Errorf("undo on empty history: %v", res)
	}
	if res := h.Redo(ctx); !res.IsError() {
		t.Errorf("redo on empty history: %v", res)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history reports undo/redo available")
	}
}

func TestFailedCommandNotRecorded(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	res := h.Execute(ctx, newStub(command.Errorf("boom"), command.Success()))
	if !res.IsError() {
		t.Fatalf("Execute: %v", res)
	}
	if h.UndoCount() != 0 {
		t.Error("failed command entered history")
	}

	res = h.Execute(ctx, newStub(command.Cancelled(), command.Success()))
	if res.Status != command.StatusCancelled {
		t.Fatalf("Execute: %v", res)
	}
	if h.UndoCount() != 0 {
		t.Error("cancelled command entered history")
	}
}

func TestWarningCommandRecorded(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	res := h.Execute(ctx, newStub(command.Warningf("clipped"), command.Success()))
	if res.Status != command.StatusWarning {
		t.Fatalf("Execute: %v", res)
	}
	if h.UndoCount() != 1 {
		t.Error("warning command should enter history")
	}
}

func TestTimelineTruncation(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	h.SetMerging(false)

	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	_ = h.Undo(ctx)
	if h.RedoCount() != 1 {
		t.Fatalf("RedoCount = %d", h.RedoCount())
	}

	// A new command after an undo discards the redo branch.
	_ = h.Execute(ctx, moveTo(30, 30, 10, 10))
	if h.RedoCount() != 0 {
		t.Errorf("RedoCount after new command = %d", h.RedoCount())
	}
	if res := h.Redo(ctx); !res.IsError() {
		t.Errorf("redo should have nothing to do: %v", res)
	}
}

func TestCapacityEviction(t *testing.T) {
	ctx := newTestContext()
	h := New(3)
	h.SetMerging(false)

	for i := 1; i <= 5; i++ {
		f := float64(i * 10)
		if res := h.Execute(ctx, moveTo(f, f, f-10, f-10)); !res.OK() {
			t.Fatalf("Execute %d: %v", i, res)
		}
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", h.UndoCount())
	}

	// Only the newest three survive; undoing all of them lands on the
	// state after the second command.
	for h.CanUndo() {
		if res := h.Undo(ctx); !res.OK() {
			t.Fatalf("Undo: %v", res)
		}
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(20, 20) {
		t.Errorf("position after full undo = %v", p)
	}
}

func TestMerging(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	var executed, merged int
	ctx.WithSink(command.SinkFunc(func(e command.Event) {
		switch e.Kind {
		case command.EventExecuted:
			executed++
		case command.EventMerged:
			merged++
		}
	}))

	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	_ = h.Execute(ctx, moveTo(30, 30, 20, 20))

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1 merged entry", h.UndoCount())
	}
	// Each gesture step announces itself once: executed, merged, merged.
	if executed != 1 {
		t.Errorf("executed events = %d, want 1", executed)
	}
	if merged != 2 {
		t.Errorf("merged events = %d, want 2", merged)
	}
	if h.Stats().Merged != 2 {
		t.Errorf("Stats().Merged = %d", h.Stats().Merged)
	}

	// One undo reverses the whole gesture.
	if res := h.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(0, 0) {
		t.Errorf("position after undo = %v", p)
	}
}

func TestMergingDisabled(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	h.SetMerging(false)

	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}
}

func TestBatch(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	h.BeginBatch("Arrange")
	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, command.NewProperty(0, "text", "Test", "Go"))
	h.EndBatch()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1 batch entry", h.UndoCount())
	}
	if desc, _ := h.NextUndoDescription(); desc != "Arrange (2 operations)" {
		t.Errorf("description = %q", desc)
	}

	if res := h.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(0, 0) {
		t.Errorf("position after undo = %v", p)
	}
	c, _ := ctx.Doc.Component(0)
	if v, _ := c.Property("text"); v != "Test" {
		t.Errorf("text after undo = %q", v)
	}
}

func TestBatchUndoEmitsSingleEvent(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	var undone int
	ctx.WithSink(command.SinkFunc(func(e command.Event) {
		if e.Kind == command.EventUndone {
			undone++
		}
	}))

	h.BeginBatch("Arrange")
	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	h.EndBatch()

	if res := h.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if undone != 1 {
		t.Errorf("undone events = %d, want 1 for the whole batch", undone)
	}
}

func TestEmptyBatchDiscarded(t *testing.T) {
	h := New(0)
	h.BeginBatch("Nothing")
	h.EndBatch()
	if h.UndoCount() != 0 {
		t.Error("empty batch entered history")
	}
	if h.Stats().BatchesCreated != 0 {
		t.Error("empty batch counted in stats")
	}
}

func TestBatchClosedByUndo(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	h.BeginBatch("Open")
	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	if !h.InBatch() {
		t.Fatal("batch should be open")
	}

	// Undo closes the batch and then reverses it.
	if res := h.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if h.InBatch() {
		t.Error("batch still open after undo")
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(0, 0) {
		t.Errorf("position after undo = %v", p)
	}
}

func TestBatchTimeout(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	h.SetBatchTimeout(100 * time.Millisecond)

	clock := time.Now()
	h.now = func() time.Time { return clock }

	h.BeginBatch("Slow")
	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))

	// Within the timeout the batch keeps absorbing commands.
	clock = clock.Add(50 * time.Millisecond)
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	if !h.InBatch() {
		t.Fatal("batch closed too early")
	}

	// After the idle gap the stale batch closes before the next command
	// is considered, so the late command stands alone.
	clock = clock.Add(200 * time.Millisecond)
	_ = h.Execute(ctx, moveTo(30, 30, 20, 20))
	if h.InBatch() {
		t.Error("stale batch still open")
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want batch + standalone", h.UndoCount())
	}
}

func TestCancelBatchRollsBack(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	before := ctx.Doc.Snapshot()

	h.BeginBatch("Doomed")
	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, command.NewProperty(0, "text", "Test", "Go"))
	if res := h.CancelBatch(ctx); !res.OK() {
		t.Fatalf("CancelBatch: %v", res)
	}

	if !before.Matches(ctx.Doc) {
		t.Error("cancelled batch left changes applied")
	}
	if h.UndoCount() != 0 {
		t.Error("cancelled batch entered history")
	}
}

func TestTransaction(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	res := h.Transaction(ctx, "Setup", func() command.Result {
		if r := h.Execute(ctx, moveTo(10, 10, 0, 0)); !r.OK() {
			return r
		}
		return h.Execute(ctx, command.NewProperty(0, "text", "Test", "Go"))
	})
	if !res.OK() {
		t.Fatalf("Transaction: %v", res)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestTransactionRollback(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	before := ctx.Doc.Snapshot()

	res := h.Transaction(ctx, "Broken", func() command.Result {
		if r := h.Execute(ctx, moveTo(10, 10, 0, 0)); !r.OK() {
			return r
		}
		return h.Execute(ctx, command.NewProperty(0, "missing", "", "x"))
	})
	if !res.IsError() {
		t.Fatalf("Transaction should fail: %v", res)
	}
	if !before.Matches(ctx.Doc) {
		t.Error("failed transaction left changes applied")
	}
	if h.UndoCount() != 0 {
		t.Error("failed transaction entered history")
	}
}

func TestFailedUndoRestoresStack(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	stub := newStub(command.Success(), command.Errorf("stuck"))
	_ = h.Execute(ctx, stub)

	if res := h.Undo(ctx); !res.IsError() {
		t.Fatalf("Undo: %v", res)
	}
	if h.UndoCount() != 1 || h.RedoCount() != 0 {
		t.Errorf("stacks = %d/%d, command should stay undoable", h.UndoCount(), h.RedoCount())
	}
}

func TestCancelledUndoRestoresStack(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	stub := newStub(command.Success(), command.Cancelled())
	_ = h.Execute(ctx, stub)

	if res := h.Undo(ctx); res.Status != command.StatusCancelled {
		t.Fatalf("Undo: %v", res)
	}
	if h.UndoCount() != 1 {
		t.Error("cancelled undo must leave the command on the stack")
	}
}

func TestFailedRedoRestoresStack(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	stub := newStub(command.Success(), command.Success())
	_ = h.Execute(ctx, stub)
	_ = h.Undo(ctx)

	stub.execResult = command.Errorf("gone")
	if res := h.Redo(ctx); !res.IsError() {
		t.Fatalf("Redo: %v", res)
	}
	if h.RedoCount() != 1 || h.UndoCount() != 0 {
		t.Errorf("stacks = %d/%d, command should stay redoable", h.UndoCount(), h.RedoCount())
	}
}

func TestValidateDropsInvalid(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	good := newStub(command.Success(), command.Success())
	bad := newStub(command.Success(), command.Success())
	_ = h.Execute(ctx, good)
	_ = h.Execute(ctx, bad)
	_ = h.Execute(ctx, newStub(command.Success(), command.Success()))
	_ = h.Undo(ctx)

	bad.valid = false
	if removed := h.Validate(ctx); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if h.UndoCount() != 1 || h.RedoCount() != 1 {
		t.Errorf("stacks = %d/%d", h.UndoCount(), h.RedoCount())
	}
}

func TestDescriptionsAndSnapshot(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	_ = h.Execute(ctx, command.NewProperty(0, "text", "Test", "Go"))
	if desc, ok := h.NextUndoDescription(); !ok || desc != "Change text Property" {
		t.Errorf("NextUndoDescription = %q, %v", desc, ok)
	}
	if _, ok := h.NextRedoDescription(); ok {
		t.Error("NextRedoDescription should be empty")
	}

	_ = h.Undo(ctx)
	if desc, ok := h.NextRedoDescription(); !ok || desc != "Change text Property" {
		t.Errorf("NextRedoDescription = %q, %v", desc, ok)
	}

	_ = h.Redo(ctx)
	snap := h.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot = %v", snap)
	}
}

func TestClear(t *testing.T) {
	ctx := newTestContext()
	h := New(0)

	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Undo(ctx)
	_ = h.Execute(ctx, moveTo(5, 5, 0, 0))
	h.Clear()

	if h.CanUndo() || h.CanRedo() || h.InBatch() {
		t.Error("Clear left state behind")
	}
	if h.Stats().Executed == 0 {
		t.Error("Clear should retain statistics")
	}
}

func TestStats(t *testing.T) {
	ctx := newTestContext()
	h := New(0)
	h.SetMerging(false)

	_ = h.Execute(ctx, moveTo(10, 10, 0, 0))
	_ = h.Execute(ctx, moveTo(20, 20, 10, 10))
	_ = h.Undo(ctx)
	_ = h.Redo(ctx)
	h.BeginBatch("B")
	_ = h.Execute(ctx, moveTo(30, 30, 20, 20))
	h.EndBatch()

	s := h.Stats()
	if s.Executed != 3 || s.Undone != 1 || s.Redone != 1 || s.BatchesCreated != 1 {
		t.Errorf("stats = %+v", s)
	}
}
