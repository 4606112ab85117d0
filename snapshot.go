package alertz

import "fmt"

// Snapshot is the Manager's public state at one instant.
type Snapshot struct {
	AnyAlerts                      bool     `json:"any_alerts" yaml:"any_alerts"`
	FoldersWithFailedTransferFiles []string `json:"folders_with_failed_transfer_files" yaml:"folders_with_failed_transfer_files"`
	ConflictedFiles                []string `json:"conflicted_files" yaml:"conflicted_files"`
	FailedTransferAlertsEnabled    bool     `json:"failed_transfer_alerts_enabled" yaml:"failed_transfer_alerts_enabled"`
	ConflictedFileAlertsEnabled    bool     `json:"conflicted_file_alerts_enabled" yaml:"conflicted_file_alerts_enabled"`
}

// Snapshot captures the public state. The slices are copies.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		AnyAlerts:                      m.AnyAlerts(),
		FoldersWithFailedTransferFiles: m.FoldersWithFailedTransferFiles(),
		ConflictedFiles:                m.ConflictedFiles(),
		FailedTransferAlertsEnabled:    m.failedTransfersEnabled,
		ConflictedFileAlertsEnabled:    m.conflictedFilesEnabled,
	}
}

// Encode serializes the snapshot with codec.
func (s Snapshot) Encode(codec Codec) ([]byte, error) {
	data, err := codec.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot as %s: %w", codec.ContentType(), err)
	}
	return data, nil
}
