package command

import (
	"testing"

	"github.com/dshills/formstorm/internal/designer/layout"
)

// scriptedCommand returns canned results and records calls, for driving
// the macro's rollback paths.
type scriptedCommand struct {
	base
	execResult Result
	undoResult Result
	executed   int
	undone     int
}

func newScripted(exec, undo Result) *scriptedCommand {
	return &scriptedCommand{base: newBase(Metadata{Category: "Test"}), execResult: exec, undoResult: undo}
}

func (s *scriptedCommand) Execute(ctx *Context) Result {
	s.executed++
	return s.execResult
}

func (s *scriptedCommand) Undo(ctx *Context) Result {
	s.undone++
	return s.undoResult
}

func (s *scriptedCommand) Description() string { return "Scripted" }

func TestMacroExecuteUndo(t *testing.T) {
	ctx := newTestContext()
	before := ctx.Doc.Snapshot()

	macro := NewMacro("Arrange")
	macro.Add(NewMove([]int{0}, []layout.Position{layout.Pos(0, 0)}, []layout.Position{layout.Pos(10, 10)}))
	macro.Add(NewProperty(0, "text", "Test Button", "Go"))

	if res := macro.Execute(ctx); !res.OK() {
		t.Fatalf("Execute: %v", res)
	}
	if p, _ := ctx.Doc.Layout.Position(0); p != layout.Pos(10, 10) {
		t.Errorf("position = %v", p)
	}
	c, _ := ctx.Doc.Component(0)
	if v, _ := c.Property("text"); v != "Go" {
		t.Errorf("text = %q", v)
	}

	if res := macro.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if !before.Matches(ctx.Doc) {
		t.Error("undo did not restore the document")
	}
}

func TestMacroRollbackOnError(t *testing.T) {
	ctx := newTestContext()
	before := ctx.Doc.Snapshot()

	macro := NewMacro("Bad batch")
	macro.Add(NewMove([]int{0}, []layout.Position{layout.Pos(0, 0)}, []layout.Position{layout.Pos(10, 10)}))
	macro.Add(NewProperty(0, "nope", "", "x"))

	res := macro.Execute(ctx)
	if !res.IsError() {
		t.Fatalf("Execute should fail: %v", res)
	}
	if !before.Matches(ctx.Doc) {
		t.Error("failed macro left the document half-applied")
	}
}

func TestMacroRollbackIncludesWarnings(t *testing.T) {
	ctx := newTestContext()
	warning := newScripted(Warningf("clipped"), Success())
	macro := NewMacro("Mixed")
	macro.Add(warning)
	macro.Add(newScripted(Errorf("boom"), Success()))

	if res := macro.Execute(ctx); !res.IsError() {
		t.Fatalf("Execute should fail: %v", res)
	}
	if warning.undone != 1 {
		t.Errorf("warning sub-command undone %d times, want 1", warning.undone)
	}
}

func TestMacroCancelledAborts(t *testing.T) {
	ctx := newTestContext()
	first := newScripted(Success(), Success())
	tail := newScripted(Success(), Success())
	macro := NewMacro("Cancelled")
	macro.Add(first)
	macro.Add(newScripted(Cancelled(), Success()))
	macro.Add(tail)

	res := macro.Execute(ctx)
	if res.Status != StatusCancelled {
		t.Fatalf("status = %v, want cancelled", res.Status)
	}
	if first.undone != 1 {
		t.Errorf("applied prefix undone %d times, want 1", first.undone)
	}
	if tail.executed != 0 {
		t.Error("sub-command after the cancellation must not run")
	}
}

func TestMacroWarningAggregation(t *testing.T) {
	ctx := newTestContext()
	macro := NewMacro("Warned")
	macro.Add(newScripted(Success(), Success()))
	macro.Add(newScripted(Warningf("clipped"), Success()))

	res := macro.Execute(ctx)
	if res.Status != StatusWarning {
		t.Errorf("status = %v, want warning", res.Status)
	}
}

func TestMacroDescription(t *testing.T) {
	macro := NewMacro("Align Left")
	macro.Add(NewProperty(0, "text", "a", "b"))
	if got := macro.Description(); got != "Change text Property" {
		t.Errorf("single-command description = %q", got)
	}
	macro.Add(NewProperty(0, "text", "b", "c"))
	if got := macro.Description(); got != "Align Left (2 operations)" {
		t.Errorf("description = %q", got)
	}
}

func TestMacroEmitsSingleEvent(t *testing.T) {
	ctx := newTestContext()
	var kinds []EventKind
	ctx.WithSink(SinkFunc(func(e Event) { kinds = append(kinds, e.Kind) }))

	// Real commands emit on their own; inside a macro they must not.
	macro := NewMacro("Nudge")
	macro.Add(NewMove([]int{0}, []layout.Position{layout.Pos(0, 0)}, []layout.Position{layout.Pos(10, 0)}))
	macro.Add(NewMove([]int{0}, []layout.Position{layout.Pos(10, 0)}, []layout.Position{layout.Pos(10, 10)}))

	if res := macro.Execute(ctx); !res.OK() {
		t.Fatalf("Execute: %v", res)
	}
	if len(kinds) != 1 || kinds[0] != EventExecuted {
		t.Errorf("execute events = %v, want one executed event", kinds)
	}

	kinds = nil
	if res := macro.Undo(ctx); !res.OK() {
		t.Fatalf("Undo: %v", res)
	}
	if len(kinds) != 1 || kinds[0] != EventUndone {
		t.Errorf("undo events = %v, want one undone event", kinds)
	}
}

func TestMacroFailureEmitsNothing(t *testing.T) {
	ctx := newTestContext()
	var kinds []EventKind
	ctx.WithSink(SinkFunc(func(e Event) { kinds = append(kinds, e.Kind) }))

	macro := NewMacro("Doomed")
	macro.Add(NewMove([]int{0}, []layout.Position{layout.Pos(0, 0)}, []layout.Position{layout.Pos(5, 5)}))
	macro.Add(NewMove([]int{7}, []layout.Position{layout.Pos(0, 0)}, []layout.Position{layout.Pos(1, 1)}))

	if res := macro.Execute(ctx); !res.IsError() {
		t.Fatalf("Execute: %v", res)
	}
	if len(kinds) != 0 {
		t.Errorf("events = %v, want none from a rolled-back macro", kinds)
	}
}

func TestMacroUndoStopsOnError(t *testing.T) {
	ctx := newTestContext()
	first := newScripted(Success(), Success())
	macro := NewMacro("Fragile")
	macro.Add(first)
	macro.Add(newScripted(Success(), Errorf("stuck")))

	if res := macro.Execute(ctx); !res.OK() {
		t.Fatalf("Execute: %v", res)
	}
	if res := macro.Undo(ctx); !res.IsError() {
		t.Fatalf("Undo should surface the failure: %v", res)
	}
	if first.undone != 0 {
		t.Error("undo must stop at the failing sub-command")
	}
}

func TestMacroIsValid(t *testing.T) {
	ctx := newTestContext()
	macro := NewMacro("Check")
	macro.Add(NewProperty(0, "text", "a", "b"))
	if !macro.IsValid(ctx) {
		t.Error("macro over an existing component should be valid")
	}
	macro.Add(NewProperty(9, "text", "a", "b"))
	if macro.IsValid(ctx) {
		t.Error("macro with a missing target should be invalid")
	}
}
