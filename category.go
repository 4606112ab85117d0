package alertz

// Category identifies one of the two independently toggled kinds of alert.
type Category int

const (
	// CategoryFailedTransfers covers folders that contain failing transfers.
	CategoryFailedTransfers Category = iota

	// CategoryConflictedFiles covers files with unresolved sync conflicts.
	CategoryConflictedFiles
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryFailedTransfers:
		return "failed_transfers"
	case CategoryConflictedFiles:
		return "conflicted_files"
	default:
		return "unknown"
	}
}
