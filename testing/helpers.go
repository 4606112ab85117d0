// Package testing provides fakes and helpers for testing code built on alertz.
package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/alertz"
)

// FakeTransferHistory is a TransferHistory whose failing transfers are set
// directly by the test.
type FakeTransferHistory struct {
	failing  []alertz.FailingTransfer
	notifier alertz.Notifier
	queries  int
}

// NewFakeTransferHistory creates an empty FakeTransferHistory.
func NewFakeTransferHistory() *FakeTransferHistory {
	return &FakeTransferHistory{}
}

// OnTransferCompleted implements alertz.TransferHistory.
func (f *FakeTransferHistory) OnTransferCompleted(fn func()) func() {
	return f.notifier.Subscribe(fn)
}

// FailingTransfers implements alertz.TransferHistory.
func (f *FakeTransferHistory) FailingTransfers() []alertz.FailingTransfer {
	f.queries++
	out := make([]alertz.FailingTransfer, len(f.failing))
	copy(out, f.failing)
	return out
}

// Fail replaces the failing transfers with one transfer per folder ID and
// fires a transfer-completed notification.
func (f *FakeTransferHistory) Fail(folderIDs ...string) {
	transfers := make([]alertz.FailingTransfer, len(folderIDs))
	for i, id := range folderIDs {
		transfers[i] = alertz.FailingTransfer{FolderID: id, Path: id + "/file"}
	}
	f.Set(transfers...)
}

// Set replaces the failing transfers and fires a notification.
func (f *FakeTransferHistory) Set(transfers ...alertz.FailingTransfer) {
	f.failing = append([]alertz.FailingTransfer{}, transfers...)
	f.notifier.Notify()
}

// Queries returns how many times FailingTransfers has been called.
func (f *FakeTransferHistory) Queries() int {
	return f.queries
}

// Subscribers returns the number of registered listeners.
func (f *FakeTransferHistory) Subscribers() int {
	return f.notifier.Len()
}

// FakeConflictWatcher is a ConflictWatcher whose conflicted files are set
// directly by the test.
type FakeConflictWatcher struct {
	files    []string
	notifier alertz.Notifier
}

// NewFakeConflictWatcher creates an empty FakeConflictWatcher.
func NewFakeConflictWatcher() *FakeConflictWatcher {
	return &FakeConflictWatcher{}
}

// OnConflictedFilesChanged implements alertz.ConflictWatcher.
func (f *FakeConflictWatcher) OnConflictedFilesChanged(fn func()) func() {
	return f.notifier.Subscribe(fn)
}

// ConflictedFiles implements alertz.ConflictWatcher.
func (f *FakeConflictWatcher) ConflictedFiles() []string {
	out := make([]string, len(f.files))
	copy(out, f.files)
	return out
}

// Report replaces the conflicted files and fires a notification.
func (f *FakeConflictWatcher) Report(paths ...string) {
	f.files = append([]string{}, paths...)
	f.notifier.Notify()
}

// Subscribers returns the number of registered listeners.
func (f *FakeConflictWatcher) Subscribers() int {
	return f.notifier.Len()
}

var (
	_ alertz.TransferHistory = (*FakeTransferHistory)(nil)
	_ alertz.ConflictWatcher = (*FakeConflictWatcher)(nil)
)

// ChangeCounter counts alert state notifications from a Manager.
type ChangeCounter struct {
	count int
}

// CountChanges subscribes a ChangeCounter to m and unsubscribes it when the
// test ends.
func CountChanges(t *testing.T, m *alertz.Manager) *ChangeCounter {
	t.Helper()
	c := &ChangeCounter{}
	t.Cleanup(m.Subscribe(func() { c.count++ }))
	return c
}

// Count returns the number of notifications seen so far.
func (c *ChangeCounter) Count() int {
	return c.count
}

// Take returns the number of notifications seen since the last Take.
func (c *ChangeCounter) Take() int {
	n := c.count
	c.count = 0
	return n
}

// RequireConsistent fails the test if AnyAlerts disagrees with the views.
func RequireConsistent(t *testing.T, m *alertz.Manager) {
	t.Helper()
	want := len(m.FoldersWithFailedTransferFiles()) > 0 || len(m.ConflictedFiles()) > 0
	if got := m.AnyAlerts(); got != want {
		t.Fatalf("AnyAlerts() = %v, views say %v (folders=%v conflicts=%v)",
			got, want, m.FoldersWithFailedTransferFiles(), m.ConflictedFiles())
	}
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForSettingsState waits until s reaches the expected state or timeout occurs.
func WaitForSettingsState(t *testing.T, s *alertz.SettingsWatcher, expected alertz.SettingsState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return s.State() == expected
	})
}

// StartLoop runs a new Loop in the background and stops it when the test ends.
func StartLoop(t *testing.T) *alertz.Loop {
	t.Helper()
	loop := alertz.NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx) //nolint:errcheck // Run only returns ctx.Err()
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop
}

// OnLoop runs fn on loop, waits for it, and fails the test if it could not run.
func OnLoop(t *testing.T, loop *alertz.Loop, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := loop.Do(ctx, fn); err != nil {
		t.Fatalf("loop.Do() error = %v", err)
	}
}
