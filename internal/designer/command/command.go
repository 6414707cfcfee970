package command

import "github.com/google/uuid"

// Command is a reversible unit of document mutation.
type Command interface {
	// Execute applies the command to the document in ctx.
	Execute(ctx *Context) Result

	// Undo reverses the command. Undo after a successful Execute must
	// restore the observable document state that preceded it.
	Undo(ctx *Context) Result

	// ID returns the command's unique identifier.
	ID() uuid.UUID

	// Description returns a short human-readable description.
	Description() string

	// Metadata returns descriptive tags for history display and filtering.
	Metadata() Metadata

	// CanMergeWith reports whether next (the command about to be executed)
	// could be coalesced into this one.
	CanMergeWith(next Command) bool

	// MergeWith coalesces next into this command, returning true if it was
	// absorbed. A false return is not an error; the two commands simply
	// remain separate history entries.
	MergeWith(next Command) bool

	// IsValid reports whether the command still applies to the document
	// (e.g. its target component still exists). History drops invalid
	// commands during validation.
	IsValid(ctx *Context) bool
}

// Metadata describes a command for history display and filtering.
type Metadata struct {
	// Category groups commands, e.g. "Layout", "Components", "Properties".
	Category string
	// Affected lists the component indices the command touches.
	Affected []int
	// Priority influences merge/eviction decisions; higher is stickier.
	Priority int
	// ShouldLog marks commands worth logging.
	ShouldLog bool
	// Tags are free-form labels for filtering and grouping.
	Tags []string
}

// base carries the identity and metadata shared by all commands and
// provides the default no-merge, always-valid behavior.
type base struct {
	id   uuid.UUID
	meta Metadata
}

func newBase(meta Metadata) base {
	return base{id: uuid.New(), meta: meta}
}

func (b *base) ID() uuid.UUID {
	return b.id
}

func (b *base) Metadata() Metadata {
	return b.meta
}

func (b *base) CanMergeWith(Command) bool {
	return false
}

func (b *base) MergeWith(Command) bool {
	return false
}

func (b *base) IsValid(*Context) bool {
	return true
}
