package history

import "github.com/zoobzio/capitan"

var (
	// TransferFailed is emitted when a transfer completes with an error.
	TransferFailed = capitan.NewSignal(
		"alertz.history.transfer.failed",
		"Transfer failed",
	)

	// TransferSucceeded is emitted when a transfer completes successfully.
	TransferSucceeded = capitan.NewSignal(
		"alertz.history.transfer.succeeded",
		"Transfer succeeded",
	)
)

var (
	// KeyFolder is the folder ID of a transfer.
	KeyFolder = capitan.NewStringKey("folder")

	// KeyPath is the path of a transfer within its folder.
	KeyPath = capitan.NewStringKey("path")
)
