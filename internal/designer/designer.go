// Package designer is the facade over the form designer's document,
// command history, palette, and event plumbing. UI layers and scripts
// drive edits through it; every mutation goes through an undoable
// command.
package designer

import (
	"github.com/dshills/formstorm/internal/config"
	"github.com/dshills/formstorm/internal/designer/command"
	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/document"
	"github.com/dshills/formstorm/internal/designer/history"
	"github.com/dshills/formstorm/internal/designer/layout"
	"github.com/dshills/formstorm/internal/designer/palette"
	"github.com/dshills/formstorm/internal/designer/selection"
	"github.com/dshills/formstorm/internal/event"
	"github.com/dshills/formstorm/internal/event/topic"
)

// Topics published for command lifecycle events.
const (
	TopicExecuted = topic.Topic("designer.command.executed")
	TopicUndone   = topic.Topic("designer.command.undone")
	TopicMerged   = topic.Topic("designer.command.merged")
)

// eventSource identifies this module in published envelopes.
const eventSource = "designer"

// Designer owns one document under edit and the machinery around it.
type Designer struct {
	doc     *document.Document
	history *history.History
	ctx     *command.Context
	factory *component.Registry
	palette *palette.Palette
	bus     *event.Bus
}

// New creates a designer over an empty document.
func New(opts ...Option) *Designer {
	d := &Designer{
		doc:     document.New(),
		history: history.New(0),
		factory: component.Builtin(),
		palette: palette.Builtin(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.ctx = command.NewContext(d.doc).WithFactory(d.factory)
	if d.bus != nil {
		d.ctx.WithSink(&busSink{bus: d.bus})
	}
	return d
}

// busSink forwards command lifecycle events onto the bus.
type busSink struct {
	bus *event.Bus
}

func (s *busSink) Emit(e command.Event) {
	var t topic.Topic
	switch e.Kind {
	case command.EventExecuted:
		t = TopicExecuted
	case command.EventUndone:
		t = TopicUndone
	case command.EventMerged:
		t = TopicMerged
	default:
		return
	}
	_ = s.bus.Publish(event.New(t, e, eventSource))
}

// ApplyConfig applies history limits and canvas grid settings. Safe to
// call on a live designer; a config watcher can feed reloads here.
func (d *Designer) ApplyConfig(cfg config.Config) {
	if cfg.History.MaxEntries > 0 {
		d.history.SetMaxEntries(cfg.History.MaxEntries)
	}
	if cfg.History.BatchTimeout > 0 {
		d.history.SetBatchTimeout(cfg.History.BatchTimeout.Std())
	}
	d.history.SetMerging(cfg.History.MergeEnabled)
	d.doc.Layout.SetGrid(cfg.Canvas.Columns, cfg.Canvas.SpacingX, cfg.Canvas.SpacingY, cfg.Canvas.StartX, cfg.Canvas.StartY)
}

// Save renders the current form as a JSON form file.
func (d *Designer) Save() ([]byte, error) {
	return d.doc.Encode()
}

// Load replaces the form with one decoded from a form file. History is
// cleared; commands recorded against the old document cannot apply to
// the new one.
func (d *Designer) Load(data []byte) error {
	doc, err := document.Decode(data, d.factory)
	if err != nil {
		return err
	}
	d.doc = doc
	d.ctx = command.NewContext(doc).WithFactory(d.factory)
	if d.bus != nil {
		d.ctx.WithSink(&busSink{bus: d.bus})
	}
	d.history.Clear()
	return nil
}

// Document returns the document under edit.
func (d *Designer) Document() *document.Document {
	return d.doc
}

// History returns the undo/redo controller.
func (d *Designer) History() *history.History {
	return d.history
}

// Palette returns the widget palette.
func (d *Designer) Palette() *palette.Palette {
	return d.palette
}

// Selection returns the selected component indices.
func (d *Designer) Selection() *selection.Set {
	return d.doc.Selection
}

// Len returns the number of components.
func (d *Designer) Len() int {
	return d.doc.Len()
}

// Component returns the component at idx.
func (d *Designer) Component(idx int) (component.Component, bool) {
	return d.doc.Component(idx)
}

// Add appends a palette widget to the form at the grid default
// position with the palette's default geometry and properties.
func (d *Designer) Add(widgetType string) command.Result {
	entry, ok := d.palette.Lookup(widgetType)
	if !ok {
		return command.Errorf("add: %s: %v", widgetType, ErrUnknownWidget)
	}
	idx := d.doc.Len()
	cmd := command.NewAdd(idx, d.doc.Layout.DefaultPosition(idx), entry.Size(), entry.Spec())
	return d.history.Execute(d.ctx, cmd)
}

// AddAt inserts a component built from spec at index with explicit
// geometry.
func (d *Designer) AddAt(index int, pos layout.Position, size layout.Size, spec component.Spec) command.Result {
	return d.history.Execute(d.ctx, command.NewAdd(index, pos, size, spec))
}

// Move moves components to new positions. The current positions are
// captured for undo; consecutive moves of the same components merge
// into one history entry.
func (d *Designer) Move(indices []int, to []layout.Position) command.Result {
	if len(indices) == 0 {
		return command.Errorf("move: %v", ErrNoTargets)
	}
	if len(indices) != len(to) {
		return command.Errorf("move: %v", ErrCountMismatch)
	}
	from := make([]layout.Position, len(indices))
	for i, idx := range indices {
		pos, ok := d.doc.Layout.Position(idx)
		if !ok {
			return command.Errorf("move: component %d has no position", idx)
		}
		from[i] = pos
	}
	return d.history.Execute(d.ctx, command.NewMove(indices, from, to))
}

// Resize resizes one component, optionally repositioning it (corner
// and edge drags move the origin as they resize).
func (d *Designer) Resize(index int, to layout.Size, newPos *layout.Position) command.Result {
	oldSize, ok := d.doc.Layout.Size(index)
	if !ok {
		return command.Errorf("resize: component %d has no size", index)
	}
	var oldPos *layout.Position
	if newPos != nil {
		if pos, ok := d.doc.Layout.Position(index); ok {
			p := pos
			oldPos = &p
		}
	}
	return d.history.Execute(d.ctx, command.NewResize(index, oldSize, to, oldPos, newPos))
}

// SetProperty changes one component property, capturing the current
// value for undo.
func (d *Designer) SetProperty(index int, name, value string) command.Result {
	comp, ok := d.doc.Component(index)
	if !ok {
		return command.Errorf("property: component %d does not exist", index)
	}
	old, ok := comp.Property(name)
	if !ok {
		return command.Errorf("property: %s has no property %q", comp.Name(), name)
	}
	return d.history.Execute(d.ctx, command.NewProperty(index, name, old, value))
}

// Delete removes the given components.
func (d *Designer) Delete(indices []int) command.Result {
	if len(indices) == 0 {
		return command.Errorf("delete: %v", ErrNoTargets)
	}
	return d.history.Execute(d.ctx, command.NewDelete(indices))
}

// DeleteSelected removes every selected component.
func (d *Designer) DeleteSelected() command.Result {
	return d.Delete(d.doc.Selection.Indices())
}

// Select adds a component to the selection.
func (d *Designer) Select(index int) bool {
	if !d.doc.ValidIndex(index) {
		return false
	}
	d.doc.Selection.Add(index)
	return true
}

// Deselect removes a component from the selection.
func (d *Designer) Deselect(index int) {
	d.doc.Selection.Remove(index)
}

// ClearSelection empties the selection.
func (d *Designer) ClearSelection() {
	d.doc.Selection.Clear()
}

// Undo reverses the most recent history entry.
func (d *Designer) Undo() command.Result {
	return d.history.Undo(d.ctx)
}

// Redo re-applies the most recent undone entry.
func (d *Designer) Redo() command.Result {
	return d.history.Redo(d.ctx)
}

// CanUndo reports whether an undo is available.
func (d *Designer) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether a redo is available.
func (d *Designer) CanRedo() bool {
	return d.history.CanRedo()
}

// BeginBatch starts collecting edits into one undo unit.
func (d *Designer) BeginBatch(description string) {
	d.history.BeginBatch(description)
}

// EndBatch closes the open batch.
func (d *Designer) EndBatch() {
	d.history.EndBatch()
}

// CancelBatch rolls back and discards the open batch.
func (d *Designer) CancelBatch() command.Result {
	return d.history.CancelBatch(d.ctx)
}

// Transaction runs fn inside a batch, rolling back on error or
// cancellation.
func (d *Designer) Transaction(description string, fn func() command.Result) command.Result {
	return d.history.Transaction(d.ctx, description, fn)
}
