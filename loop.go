package alertz

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLoopStopped is returned when work is offered to a Loop that has stopped.
	ErrLoopStopped = errors.New("loop stopped")

	// ErrAlreadyStarted is returned by Start or Run when called a second time.
	ErrAlreadyStarted = errors.New("already started")
)

// Loop runs functions one at a time on the goroutine that calls Run.
//
// The Manager and the collaborators in pkg/ are not safe for concurrent use.
// Background producers such as filesystem watchers hand their updates to a
// Loop, which makes the Run goroutine the owner of all of that state.
type Loop struct {
	tasks chan func()
	done  chan struct{}

	mu      sync.Mutex
	started bool
}

// NewLoop creates a Loop that queues up to buffer pending functions before
// Post blocks.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes posted functions in order until ctx is canceled, then returns
// ctx.Err(). Functions still queued at that point are dropped.
// Run can only be called once.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()

	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine and returns without waiting.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do queues fn and waits until it has run. It must not be called from the
// loop goroutine itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// fn may have completed just before the loop stopped.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
