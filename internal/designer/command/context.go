package command

import (
	"github.com/google/uuid"

	"github.com/dshills/formstorm/internal/designer/component"
	"github.com/dshills/formstorm/internal/designer/document"
)

// EventKind identifies a command lifecycle event.
type EventKind int

const (
	// EventExecuted is published after a command (or macro) applies.
	EventExecuted EventKind = iota
	// EventUndone is published after a command is reversed.
	EventUndone
	// EventMerged is published when a command is absorbed into the
	// previous history entry instead of creating a new one.
	EventMerged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventExecuted:
		return "executed"
	case EventUndone:
		return "undone"
	case EventMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// Event is a command lifecycle notification.
type Event struct {
	Kind        EventKind
	CommandID   uuid.UUID
	Description string
}

// Sink receives command lifecycle events. Implementations must not block
// the command path; delivery to slow consumers belongs on the sink side.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls the function.
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// NopSink discards all events.
type NopSink struct{}

// Emit discards the event.
func (NopSink) Emit(Event) {}

// Context is the per-call view of the document that commands read and
// mutate. Exactly one command is in flight per document at a time; the
// caller enforces that by constructing one context per call chain.
type Context struct {
	// Doc is the document being edited.
	Doc *document.Document

	// Events receives lifecycle notifications. Never nil; defaults to
	// NopSink.
	Events Sink

	// Factory rebuilds components from serialized specs (delete-undo,
	// add-redo). Never nil; defaults to the builtin widget registry.
	Factory *component.Registry
}

// NewContext creates a context over a document with a no-op event sink
// and the builtin component factory.
func NewContext(doc *document.Document) *Context {
	return &Context{
		Doc:     doc,
		Events:  NopSink{},
		Factory: component.Builtin(),
	}
}

// WithSink sets the event sink and returns the context.
func (c *Context) WithSink(s Sink) *Context {
	if s != nil {
		c.Events = s
	}
	return c
}

// Quiet returns a copy of the context that discards events. Composite
// paths run sub-commands through it so one user-level operation
// announces itself exactly once.
func (c *Context) Quiet() *Context {
	q := *c
	q.Events = NopSink{}
	return &q
}

// WithFactory sets the component factory and returns the context.
func (c *Context) WithFactory(r *component.Registry) *Context {
	if r != nil {
		c.Factory = r
	}
	return c
}

// Emit publishes an event to the sink.
func (c *Context) Emit(e Event) {
	if c.Events != nil {
		c.Events.Emit(e)
	}
}

// Component returns the component at idx.
func (c *Context) Component(idx int) (component.Component, bool) {
	return c.Doc.Component(idx)
}

// ValidIndex reports whether idx addresses an existing component.
func (c *Context) ValidIndex(idx int) bool {
	return c.Doc.ValidIndex(idx)
}
