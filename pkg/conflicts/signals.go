package conflicts

import "github.com/zoobzio/capitan"

var (
	// WatchStarted is emitted when a Watcher begins watching its roots.
	WatchStarted = capitan.NewSignal(
		"alertz.conflicts.watch.started",
		"Conflict watching started",
	)

	// WatchStopped is emitted when a Watcher stops watching.
	WatchStopped = capitan.NewSignal(
		"alertz.conflicts.watch.stopped",
		"Conflict watching stopped",
	)

	// WatchError is emitted for errors reported by fsnotify. Watching continues.
	WatchError = capitan.NewSignal(
		"alertz.conflicts.watch.error",
		"Filesystem watch error",
	)

	// ScanCompleted is emitted after every rescan.
	ScanCompleted = capitan.NewSignal(
		"alertz.conflicts.scan.completed",
		"Conflict scan completed",
	)

	// ScanFailed is emitted when a rescan fails. The previous result is kept.
	ScanFailed = capitan.NewSignal(
		"alertz.conflicts.scan.failed",
		"Conflict scan failed",
	)
)

var (
	// KeyRoots is the number of watched folder roots.
	KeyRoots = capitan.NewIntKey("roots")

	// KeyFound is the number of conflict copies found by a scan.
	KeyFound = capitan.NewIntKey("found")
)
