/*
Package alertz merges file-synchronization alert signals into a single
change-notified state for a user interface.

Two upstream collaborators feed a Manager: a TransferHistory, which knows the
transfers that are currently failing, and a ConflictWatcher, which knows the
files that currently carry a sync conflict. The Manager turns them into two
public views and one flag:

	FoldersWithFailedTransferFiles()  folder IDs with failing transfers
	ConflictedFiles()                 conflicted file paths
	AnyAlerts()                       either view non-empty

Each view has a toggle. A disabled view reads as empty while the Manager keeps
tracking the underlying set, so re-enabling it shows the current state at once.

# Notifications

Subscribers receive a zero-payload callback after every change:

	m := alertz.New(history, conflicts)
	defer m.Close()

	m.Subscribe(func() {
	    icon.SetAlerting(m.AnyAlerts())
	})

A transfer notification that leaves the set of failing folders unchanged does
not notify subscribers. Every conflict notification does. Flipping a toggle
always notifies.

# Threading

Manager, Notifier and the collaborators in pkg/ are owned by one goroutine.
Work produced elsewhere, such as filesystem events, reaches them through a
Loop:

	loop := alertz.NewLoop(16)
	go loop.Run(ctx)

	watcher := conflicts.New(loop, "/home/me/Sync")

# Settings

A SettingsWatcher applies the two toggles from a YAML or JSON document
watched through a Watcher (FileWatcher, ChannelWatcher):

	failed_transfer_alerts: true
	conflicted_file_alerts: true

# Observability

Every state change is also emitted as a capitan event (see signals.go and
fields.go). Hook them to log or count:

	capitan.Hook(alertz.AlertsStateChanged, func(_ context.Context, e *capitan.Event) {
	    n, _ := alertz.KeyConflictCount.From(e)
	    log.Printf("alerts changed, %d conflicts", n)
	})
*/
package alertz
