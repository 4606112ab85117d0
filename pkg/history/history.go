// Package history provides an in-memory transfer history that satisfies
// alertz.TransferHistory.
//
// A History remembers which (folder, path) pairs last completed with an
// error. A later successful transfer of the same path clears it. Every
// recorded transfer notifies OnTransferCompleted listeners, whether or not
// the failing set changed; deciding whether that matters is left to the
// listener.
//
// A History is owned by a single goroutine. Feed it from background work
// through an alertz.Loop.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/zoobzio/alertz"
	"github.com/zoobzio/capitan"
)

// DefaultLimit is the default number of completed transfers retained.
const DefaultLimit = 100

// Transfer is a completed file transfer. Err is nil when it succeeded.
type Transfer struct {
	FolderID    string
	Path        string
	Err         error
	CompletedAt time.Time
}

// Failed reports whether the transfer completed with an error.
func (t Transfer) Failed() bool {
	return t.Err != nil
}

type key struct {
	folder string
	path   string
}

// History is an in-memory transfer history.
type History struct {
	ctx       context.Context
	failing   map[key]Transfer
	completed []Transfer
	next      int
	count     int
	notifier  alertz.Notifier
}

// Option configures a History.
type Option func(*History)

// WithLimit sets how many completed transfers Recent can return.
// Values below one fall back to DefaultLimit.
func WithLimit(n int) Option {
	return func(h *History) {
		if n < 1 {
			n = DefaultLimit
		}
		h.completed = make([]Transfer, n)
	}
}

// WithContext sets the context attached to the capitan events a History
// emits. Default: context.Background().
func WithContext(ctx context.Context) Option {
	return func(h *History) {
		h.ctx = ctx
	}
}

// New creates an empty History.
func New(opts ...Option) *History {
	h := &History{
		ctx:       context.Background(),
		failing:   make(map[key]Transfer),
		completed: make([]Transfer, DefaultLimit),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record adds a completed transfer and notifies listeners.
func (h *History) Record(t Transfer) {
	k := key{folder: t.FolderID, path: t.Path}
	if t.Failed() {
		h.failing[k] = t
	} else {
		delete(h.failing, k)
	}

	h.completed[h.next] = t
	h.next = (h.next + 1) % len(h.completed)
	if h.count < len(h.completed) {
		h.count++
	}

	if t.Failed() {
		capitan.Emit(h.ctx, TransferFailed,
			KeyFolder.Field(t.FolderID),
			KeyPath.Field(t.Path),
			alertz.KeyError.Field(t.Err.Error()),
		)
	} else {
		capitan.Emit(h.ctx, TransferSucceeded,
			KeyFolder.Field(t.FolderID),
			KeyPath.Field(t.Path),
		)
	}

	h.notifier.Notify()
}

// Forget drops every failing transfer in folderID, for example after the
// folder was removed. Listeners are notified only if something was dropped.
func (h *History) Forget(folderID string) {
	removed := false
	for k := range h.failing {
		if k.folder == folderID {
			delete(h.failing, k)
			removed = true
		}
	}
	if removed {
		h.notifier.Notify()
	}
}

// OnTransferCompleted registers fn to be called after every Record.
func (h *History) OnTransferCompleted(fn func()) (unsubscribe func()) {
	return h.notifier.Subscribe(fn)
}

// FailingTransfers returns the transfers currently failing, sorted by folder
// and then path.
func (h *History) FailingTransfers() []alertz.FailingTransfer {
	out := make([]alertz.FailingTransfer, 0, len(h.failing))
	for k := range h.failing {
		out = append(out, alertz.FailingTransfer{FolderID: k.folder, Path: k.path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FolderID != out[j].FolderID {
			return out[i].FolderID < out[j].FolderID
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Recent returns up to n of the most recently completed transfers, newest
// first.
func (h *History) Recent(n int) []Transfer {
	if n > h.count {
		n = h.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]Transfer, n)
	for i := 0; i < n; i++ {
		idx := (h.next - 1 - i + len(h.completed)) % len(h.completed)
		out[i] = h.completed[idx]
	}
	return out
}

var _ alertz.TransferHistory = (*History)(nil)
