package core

// Listenable is implemented by anything that announces state changes.
type Listenable interface {
	// AddListener registers fn and returns a function that removes it.
	AddListener(fn func()) func()
}

// Notifier keeps a set of change listeners. The zero value is ready to use.
type Notifier struct {
	listeners map[int]func()
	nextID    int
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener adds a callback that fires on every Notify.
// Returns an unsubscribe function; calling it more than once is harmless.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		delete(n.listeners, id)
	}
}

// Notify calls every registered listener.
func (n *Notifier) Notify() {
	for _, listener := range n.listeners {
		listener()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return len(n.listeners)
}

// ClearListeners drops every listener.
func (n *Notifier) ClearListeners() {
	n.listeners = nil
}
