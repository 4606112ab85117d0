package alertz

import "github.com/zoobzio/capitan"

// Manager signals.
var (
	// AlertsStateChanged is emitted alongside every unified change notification.
	AlertsStateChanged = capitan.NewSignal(
		"alertz.alerts.state.changed",
		"Alert state changed",
	)

	// TransfersChanged is emitted when the set of folders with failing transfers changes.
	TransfersChanged = capitan.NewSignal(
		"alertz.transfers.changed",
		"Failing folder set changed",
	)

	// TransfersUnchanged is emitted when a transfer notification leaves the
	// failing folder set as it was.
	TransfersUnchanged = capitan.NewSignal(
		"alertz.transfers.unchanged",
		"Failing folder set unchanged",
	)

	// ConflictsChanged is emitted when the conflict watcher reports.
	ConflictsChanged = capitan.NewSignal(
		"alertz.conflicts.changed",
		"Conflicted files replaced",
	)

	// ToggleChanged is emitted when a category is enabled or disabled.
	ToggleChanged = capitan.NewSignal(
		"alertz.toggle.changed",
		"Alert category toggled",
	)

	// ManagerClosed is emitted when a Manager releases its subscriptions.
	ManagerClosed = capitan.NewSignal(
		"alertz.manager.closed",
		"Manager closed",
	)
)

// Settings signals.
var (
	// SettingsStarted is emitted when a SettingsWatcher begins watching.
	SettingsStarted = capitan.NewSignal(
		"alertz.settings.started",
		"Settings watching started",
	)

	// SettingsStopped is emitted when a SettingsWatcher stops watching.
	SettingsStopped = capitan.NewSignal(
		"alertz.settings.stopped",
		"Settings watching stopped",
	)

	// SettingsStateChanged is emitted when a SettingsWatcher transitions between states.
	SettingsStateChanged = capitan.NewSignal(
		"alertz.settings.state.changed",
		"Settings state transition",
	)

	// SettingsChangeReceived is emitted when raw settings arrive from the watcher.
	SettingsChangeReceived = capitan.NewSignal(
		"alertz.settings.change.received",
		"Raw settings received from watcher",
	)

	// SettingsDecodeFailed is emitted when a settings document cannot be decoded.
	SettingsDecodeFailed = capitan.NewSignal(
		"alertz.settings.decode.failed",
		"Settings decode failed",
	)

	// SettingsValidationFailed is emitted when a decoded document is incomplete.
	SettingsValidationFailed = capitan.NewSignal(
		"alertz.settings.validation.failed",
		"Settings validation failed",
	)

	// SettingsApplyFailed is emitted when settings could not reach the Manager.
	SettingsApplyFailed = capitan.NewSignal(
		"alertz.settings.apply.failed",
		"Settings apply failed",
	)

	// SettingsApplied is emitted when settings were applied to the Manager.
	SettingsApplied = capitan.NewSignal(
		"alertz.settings.applied",
		"Settings applied",
	)
)
