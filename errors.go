package ostream

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamBounds indicates a write, seek or align would move past the end
	// of the stream's addressable region and no growth could make room.
	// Concrete failures are *BoundsError values wrapping this sentinel.
	ErrStreamBounds = errors.New("ostream: operation exceeds stream bounds")
)

// BoundsError describes a bounds violation on a stream. It records the failed
// operation, which stream layer raised it, and the cursor arithmetic at the
// time of the failure.
type BoundsError struct {
	Op        string // operation that overran the stream, e.g. "write", "seek"
	Label     string // "binary" for Writer, "text" for TextWriter
	Pos       int    // cursor position when the operation was attempted
	Requested int    // bytes the operation needed
	Remaining int    // bytes that were actually available
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("ostream: %s bounds violation in %s: position %d, requested %d, remaining %d",
		e.Label, e.Op, e.Pos, e.Requested, e.Remaining)
}

// Unwrap lets callers match any bounds failure with errors.Is(err, ErrStreamBounds).
func (e *BoundsError) Unwrap() error { return ErrStreamBounds }
