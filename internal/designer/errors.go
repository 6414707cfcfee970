package designer

import "errors"

// Common errors for designer operations.
var (
	ErrUnknownWidget = errors.New("widget type is not in the palette")
	ErrNoTargets     = errors.New("no target components")
	ErrCountMismatch = errors.New("indices and positions differ in length")
)
