package errors

import (
	"runtime/debug"
	"sync/atomic"
	"time"
)

// installed holds the process-wide handler. Empty means fallback.
var (
	installed atomic.Pointer[handlerRef]
	fallback  ErrorHandler = &LogHandler{}
)

type handlerRef struct {
	h ErrorHandler
}

// SetHandler installs h as the process-wide error handler and returns the
// handler it replaces, so tests can restore it. Nil restores the default
// LogHandler over slog.Default().
func SetHandler(h ErrorHandler) (previous ErrorHandler) {
	var next *handlerRef
	if h != nil {
		next = &handlerRef{h: h}
	}
	if old := installed.Swap(next); old != nil {
		return old.h
	}
	return fallback
}

func current() ErrorHandler {
	if ref := installed.Load(); ref != nil {
		return ref.h
	}
	return fallback
}

// Report stamps err with the current time, unless already stamped, and
// hands it to the installed handler.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	current().HandleError(err)
}

// ReportErr reports err if its chain holds an *Error. It reports whether
// it did.
func ReportErr(err error) bool {
	var e *Error
	if !As(err, &e) {
		return false
	}
	Report(e)
	return true
}

// Recover reports a panic in progress as a PanicError for op and stops it.
// It must be deferred directly:
//
//	defer errors.Recover("animation.LoopScheduler")
func Recover(op string) {
	if r := recover(); r != nil {
		current().HandlePanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: string(debug.Stack()),
			Timestamp:  time.Now(),
		})
	}
}
