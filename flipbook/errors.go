package flipbook

import (
	"errors"
	"fmt"
)

// Error kinds. Every stage failure matches exactly one of these under
// errors.Is.
var (
	ErrVideoOpen          = errors.New("video cannot be opened or decoded")
	ErrInvalidRate        = errors.New("invalid frame rate")
	ErrInsufficientFrames = errors.New("at least 2 sampled frames are required")
	ErrIOWrite            = errors.New("output write failed")
	// ErrFrameMismatch is returned by Interleave when callers pass frames of
	// different sizes. Frames from Sampler always share one size.
	ErrFrameMismatch = errors.New("frames differ in size")
)

// Error is a terminal pipeline failure.
type Error struct {
	Kind error  // one of the Err* kinds
	Op   string // what was being attempted, e.g. "open video"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FontWarning records a font that could not be loaded. It is never fatal.
type FontWarning struct {
	Name string
	Err  error
}

func (w FontWarning) String() string {
	return fmt.Sprintf("font %s unavailable: %v", w.Name, w.Err)
}
