// Package errors provides structured error handling for reveal.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a component or page was constructed with
	// settings it cannot run with (empty items, non-positive interval,
	// invalid content).
	KindConfig
	// KindLifecycle indicates a mount/activate call out of order.
	KindLifecycle
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindRender indicates a rendering collaborator failed to paint.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLifecycle:
		return "lifecycle"
	case KindPanic:
		return "panic"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Sentinel causes. Match them with errors.Is.
var (
	ErrEmptyItems          = stderrors.New("items must not be empty")
	ErrNonPositiveInterval = stderrors.New("interval must be positive")
	ErrAlreadyMounted      = stderrors.New("already mounted")
	ErrDisposed            = stderrors.New("already disposed")
	ErrStopped             = stderrors.New("scheduler stopped")
)

// Error represents a structured error.
type Error struct {
	// Op is the operation that failed (e.g., "animation.NewRotator").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config returns a KindConfig error for op.
func Config(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: err}
}

// Configf returns a KindConfig error for op with a formatted cause.
func Configf(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// Lifecycle returns a KindLifecycle error for op.
func Lifecycle(op string, err error) *Error {
	return &Error{Op: op, Kind: KindLifecycle, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is is a convenience wrapper around the standard errors.Is so callers
// importing this package don't need both.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.LoopScheduler").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported at runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
