package alertz

// FailingTransfer is a file transfer the transfer history currently considers
// failed. Only FolderID is consulted by the Manager.
type FailingTransfer struct {
	FolderID string `json:"folder_id" yaml:"folder_id"`
	Path     string `json:"path" yaml:"path"`
}

// TransferHistory is the upstream source of failing transfers.
//
// OnTransferCompleted registers fn to be called whenever a transfer completes.
// The notification carries no payload; the Manager re-queries
// FailingTransfers. Notifications must be delivered on the goroutine that
// owns the Manager.
type TransferHistory interface {
	OnTransferCompleted(fn func()) (unsubscribe func())
	FailingTransfers() []FailingTransfer
}

// ConflictWatcher is the upstream source of conflicted file paths.
//
// OnConflictedFilesChanged registers fn to be called whenever the watcher's
// conflict set may have changed. Like TransferHistory, notifications must be
// delivered on the goroutine that owns the Manager.
type ConflictWatcher interface {
	OnConflictedFilesChanged(fn func()) (unsubscribe func())
	ConflictedFiles() []string
}
