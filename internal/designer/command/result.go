package command

import "fmt"

// Status classifies the outcome of a command execution or undo.
type Status int

const (
	// StatusSuccess means the command was applied in full.
	StatusSuccess Status = iota
	// StatusWarning means the command was applied with a caveat.
	StatusWarning
	// StatusError means the command could not be applied; the document is
	// unchanged (or fully rolled back for a macro).
	StatusError
	// StatusCancelled means the command aborted before mutating anything.
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of executing or undoing a command.
type Result struct {
	Status  Status
	Message string
}

// Success returns a successful result.
func Success() Result {
	return Result{Status: StatusSuccess}
}

// Warningf returns a warning result with a formatted message.
func Warningf(format string, args ...any) Result {
	return Result{Status: StatusWarning, Message: fmt.Sprintf(format, args...)}
}

// Errorf returns an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Cancelled returns a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// OK reports whether the command took effect (success or warning).
func (r Result) OK() bool {
	return r.Status == StatusSuccess || r.Status == StatusWarning
}

// IsError reports whether the command failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// String renders the result for status displays.
func (r Result) String() string {
	if r.Message == "" {
		return r.Status.String()
	}
	return fmt.Sprintf("%s: %s", r.Status, r.Message)
}
