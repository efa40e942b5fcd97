package core

// Component is a timed state machine started on mount and stopped on
// unmount. S is the scheduler type it runs on.
type Component[S any] interface {
	Activate(sched S) error
	Deactivate()
}

// UseComponent activates c on sched and registers its deactivation with l,
// so disposing l stops c. If activation fails nothing is registered.
//
// Example:
//
//	func (p *aboutPage) Mount(sched animation.Scheduler) error {
//	    if _, err := core.UseComponent(&p.Lifecycle, sched, p.counter); err != nil {
//	        return err
//	    }
//	    ...
//	}
func UseComponent[S any, C Component[S]](l *Lifecycle, sched S, c C) (C, error) {
	if err := c.Activate(sched); err != nil {
		return c, err
	}
	l.OnDispose(c.Deactivate)
	return c, nil
}

// UseListenable subscribes fn to listenable. The subscription is removed
// when l is disposed.
func UseListenable(l *Lifecycle, listenable Listenable, fn func()) {
	unsub := listenable.AddListener(fn)
	l.OnDispose(unsub)
}
