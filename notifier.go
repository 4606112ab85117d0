package alertz

// Notifier is a registry of zero-payload listeners invoked synchronously.
//
// The zero value is ready to use. A Notifier is not safe for concurrent use;
// it belongs to a single owner goroutine like the components that embed it.
type Notifier struct {
	listeners []*listener
}

type listener struct {
	fn     func()
	active bool
}

// Subscribe registers fn and returns a function that removes it again.
// The returned function may be called any number of times.
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	l := &listener{fn: fn, active: true}
	n.listeners = append(n.listeners, l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		for i, candidate := range n.listeners {
			if candidate == l {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every registered listener in subscription order.
// Listeners removed while a dispatch is running are not called afterwards;
// listeners added during a dispatch are first called on the next Notify.
func (n *Notifier) Notify() {
	if len(n.listeners) == 0 {
		return
	}
	pending := make([]*listener, len(n.listeners))
	copy(pending, n.listeners)
	for _, l := range pending {
		if l.active {
			l.fn()
		}
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int {
	return len(n.listeners)
}
