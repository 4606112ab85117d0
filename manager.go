package alertz

import (
	"context"
	"sort"

	"github.com/zoobzio/capitan"
)

// Manager merges the failing-transfer and conflicted-file signals into a single
// alert state and notifies subscribers whenever that state changes.
//
// Each category has a toggle. A disabled category reads as empty, but the
// Manager keeps tracking it, so enabling it again reveals the current state at
// once.
//
// A Manager is not safe for concurrent use. Construct it, drive it, and have
// its collaborators notify it on a single owner goroutine (see Loop).
type Manager struct {
	history TransferHistory
	watcher ConflictWatcher
	ctx     context.Context
	metrics MetricsProvider

	failingFolders map[string]struct{}
	conflicted     []string

	failedTransfersEnabled bool
	conflictedFilesEnabled bool

	folderView   []string
	conflictView []string

	changed Notifier

	unsubscribeHistory func()
	unsubscribeWatcher func()
	closed             bool
}

// New creates a Manager and subscribes it to both collaborators.
//
// Both categories start disabled unless the corresponding option is given.
// The internal sets stay empty until the first upstream notification.
//
// Example:
//
//	m := alertz.New(transfers, conflicts)
//	defer m.Close()
//
//	unsubscribe := m.Subscribe(func() {
//	    tray.SetAlert(m.AnyAlerts())
//	})
//	defer unsubscribe()
//
//	m.SetConflictedFileAlertsEnabled(true)
func New(history TransferHistory, watcher ConflictWatcher, opts ...Option) *Manager {
	cfg := &config{
		ctx:     context.Background(),
		metrics: NoOpMetricsProvider{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{
		history:                history,
		watcher:                watcher,
		ctx:                    cfg.ctx,
		metrics:                cfg.metrics,
		failingFolders:         make(map[string]struct{}),
		failedTransfersEnabled: cfg.failedTransfersEnabled,
		conflictedFilesEnabled: cfg.conflictedFilesEnabled,
	}
	m.folderView = m.projectFolders()
	m.conflictView = m.projectConflicts()

	m.unsubscribeHistory = history.OnTransferCompleted(m.transfersChanged)
	m.unsubscribeWatcher = watcher.OnConflictedFilesChanged(m.conflictsChanged)

	return m
}

// Subscribe registers fn to be called after every change to the alert state.
// fn receives no payload; read the Manager's properties from inside it.
// Listeners run synchronously, in subscription order, before the operation
// that caused the change returns.
func (m *Manager) Subscribe(fn func()) (unsubscribe func()) {
	return m.changed.Subscribe(fn)
}

// AnyAlerts reports whether either public view is non-empty.
func (m *Manager) AnyAlerts() bool {
	return len(m.folderView) > 0 || len(m.conflictView) > 0
}

// FoldersWithFailedTransferFiles returns the IDs of folders with failing
// transfers, sorted, or an empty slice while the category is disabled.
// The returned slice is a copy.
func (m *Manager) FoldersWithFailedTransferFiles() []string {
	return clone(m.folderView)
}

// ConflictedFiles returns the conflicted file paths in the order the watcher
// reported them, or an empty slice while the category is disabled.
// The returned slice is a copy.
func (m *Manager) ConflictedFiles() []string {
	return clone(m.conflictView)
}

// FailedTransferAlertsEnabled reports the failed-transfer toggle.
func (m *Manager) FailedTransferAlertsEnabled() bool {
	return m.failedTransfersEnabled
}

// ConflictedFileAlertsEnabled reports the conflicted-file toggle.
func (m *Manager) ConflictedFileAlertsEnabled() bool {
	return m.conflictedFilesEnabled
}

// SetFailedTransferAlertsEnabled enables or disables failed-transfer alerts.
// Changing the value always notifies subscribers, even when the visible
// folder list ends up the same. Setting the current value does nothing.
func (m *Manager) SetFailedTransferAlertsEnabled(enabled bool) {
	if m.failedTransfersEnabled == enabled {
		return
	}
	m.failedTransfersEnabled = enabled
	m.folderView = m.projectFolders()
	m.toggled(CategoryFailedTransfers, enabled)
}

// SetConflictedFileAlertsEnabled enables or disables conflicted-file alerts.
// It follows the same rules as SetFailedTransferAlertsEnabled.
func (m *Manager) SetConflictedFileAlertsEnabled(enabled bool) {
	if m.conflictedFilesEnabled == enabled {
		return
	}
	m.conflictedFilesEnabled = enabled
	m.conflictView = m.projectConflicts()
	m.toggled(CategoryConflictedFiles, enabled)
}

// SetEnabled sets the toggle for category. Unknown categories are ignored.
func (m *Manager) SetEnabled(category Category, enabled bool) {
	switch category {
	case CategoryFailedTransfers:
		m.SetFailedTransferAlertsEnabled(enabled)
	case CategoryConflictedFiles:
		m.SetConflictedFileAlertsEnabled(enabled)
	}
}

// Enabled reports the toggle for category. Unknown categories report false.
func (m *Manager) Enabled(category Category) bool {
	switch category {
	case CategoryFailedTransfers:
		return m.failedTransfersEnabled
	case CategoryConflictedFiles:
		return m.conflictedFilesEnabled
	default:
		return false
	}
}

// Close unsubscribes from both collaborators. Once closed, upstream
// notifications are ignored and no further change notifications are
// produced. Calling Close more than once is safe.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.unsubscribeHistory != nil {
		m.unsubscribeHistory()
	}
	if m.unsubscribeWatcher != nil {
		m.unsubscribeWatcher()
	}
	capitan.Emit(m.ctx, ManagerClosed)
}

// transfersChanged rebuilds the failing folder set and publishes it only if
// it differs from the previous set.
func (m *Manager) transfersChanged() {
	if m.closed {
		return
	}

	next := make(map[string]struct{})
	for _, t := range m.history.FailingTransfers() {
		next[t.FolderID] = struct{}{}
	}

	if sameSet(m.failingFolders, next) {
		capitan.Emit(m.ctx, TransfersUnchanged,
			KeyFolderCount.Field(len(next)),
		)
		m.metrics.OnTransfersEvaluated(false, len(next))
		return
	}

	m.failingFolders = next
	m.folderView = m.projectFolders()
	capitan.Emit(m.ctx, TransfersChanged,
		KeyFolderCount.Field(len(next)),
	)
	m.metrics.OnTransfersEvaluated(true, len(next))
	m.notify()
}

// conflictsChanged replaces the conflicted file list. Every notification from
// the watcher counts as a change.
func (m *Manager) conflictsChanged() {
	if m.closed {
		return
	}

	m.conflicted = clone(m.watcher.ConflictedFiles())
	m.conflictView = m.projectConflicts()
	capitan.Emit(m.ctx, ConflictsChanged,
		KeyConflictCount.Field(len(m.conflicted)),
	)
	m.metrics.OnConflictsReplaced(len(m.conflicted))
	m.notify()
}

func (m *Manager) toggled(category Category, enabled bool) {
	if m.closed {
		return
	}
	capitan.Emit(m.ctx, ToggleChanged,
		KeyCategory.Field(category.String()),
		KeyEnabled.Field(enabled),
	)
	m.metrics.OnToggle(category, enabled)
	m.notify()
}

func (m *Manager) notify() {
	anyAlerts := m.AnyAlerts()
	capitan.Emit(m.ctx, AlertsStateChanged,
		KeyFolderCount.Field(len(m.folderView)),
		KeyConflictCount.Field(len(m.conflictView)),
		KeyAnyAlerts.Field(anyAlerts),
	)
	m.metrics.OnAlertsStateChanged(anyAlerts)
	m.changed.Notify()
}

// projectFolders is the public folder view for the current toggle.
func (m *Manager) projectFolders() []string {
	if !m.failedTransfersEnabled {
		return []string{}
	}
	folders := make([]string, 0, len(m.failingFolders))
	for id := range m.failingFolders {
		folders = append(folders, id)
	}
	sort.Strings(folders)
	return folders
}

// projectConflicts is the public conflict view for the current toggle.
func (m *Manager) projectConflicts() []string {
	if !m.conflictedFilesEnabled {
		return []string{}
	}
	return clone(m.conflicted)
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
