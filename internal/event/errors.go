package event

import "errors"

// Common errors for bus operations.
var (
	ErrBusNotRunning     = errors.New("event bus is not running")
	ErrBusAlreadyRunning = errors.New("event bus is already running")
	ErrNilHandler        = errors.New("handler must not be nil")
	ErrInvalidTopic      = errors.New("invalid topic pattern")
	ErrNotSubscribed     = errors.New("subscription not found")
)
