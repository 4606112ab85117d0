package alertz

import "github.com/zoobzio/capitan"

// Field keys for alertz events.
var (
	// KeyCategory is the alert category a toggle event refers to.
	KeyCategory = capitan.NewStringKey("category")

	// KeyEnabled is the new value of the toggled category.
	KeyEnabled = capitan.NewBoolKey("enabled")

	// KeyFolderCount is the number of folders with failing transfers.
	KeyFolderCount = capitan.NewIntKey("folder_count")

	// KeyConflictCount is the number of conflicted files.
	KeyConflictCount = capitan.NewIntKey("conflict_count")

	// KeyAnyAlerts is true when either public view is non-empty.
	KeyAnyAlerts = capitan.NewBoolKey("any_alerts")

	// KeyState is the current state of a SettingsWatcher.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
