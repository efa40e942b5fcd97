package core

import (
	"sync"

	"github.com/go-drift/reveal/pkg/errors"
)

// Lifecycle tracks whether an owner is mounted and the cleanup it owes.
// Embed it in a page struct. A Lifecycle is single use: once disposed it
// cannot be mounted again.
type Lifecycle struct {
	disposers []func()
	mounted   bool
	disposed  bool
	mu        sync.Mutex
}

// Begin marks the owner as mounted. It fails if the owner is already
// mounted or has been disposed.
func (l *Lifecycle) Begin() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return errors.Lifecycle("core.Lifecycle.Begin", errors.ErrDisposed)
	}
	if l.mounted {
		return errors.Lifecycle("core.Lifecycle.Begin", errors.ErrAlreadyMounted)
	}
	l.mounted = true
	return nil
}

// Mounted reports whether Begin succeeded and Dispose has not run.
func (l *Lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted && !l.disposed
}

// Disposed reports whether Dispose has run.
func (l *Lifecycle) Disposed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.disposed
}

// OnDispose registers a cleanup function to be called when the owner is
// disposed. Returns an unregister function. If the owner is already
// disposed the cleanup runs immediately.
func (l *Lifecycle) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		cleanup()
		return func() {}
	}

	index := len(l.disposers)
	l.disposers = append(l.disposers, cleanup)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if index < len(l.disposers) {
			l.disposers[index] = nil
		}
	}
}

// Dispose runs all registered disposers in reverse order (LIFO), exactly
// once. Later calls are no-ops.
func (l *Lifecycle) Dispose() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.disposed = true
	disposers := l.disposers
	l.disposers = nil
	l.mu.Unlock()

	for i := len(disposers) - 1; i >= 0; i-- {
		if disposers[i] != nil {
			disposers[i]()
		}
	}
}
