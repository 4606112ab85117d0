package alertz

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestManager_Snapshot(t *testing.T) {
	f := newFixture(t, WithFailedTransferAlerts(true))
	f.history.fail("B", "A")
	f.conflicts.report("/sync/notes.sync-conflict-20240101-120000-ABCDEFG.txt")

	snap := f.manager.Snapshot()

	if !snap.AnyAlerts {
		t.Error("expected AnyAlerts")
	}
	if !reflect.DeepEqual(snap.FoldersWithFailedTransferFiles, []string{"A", "B"}) {
		t.Errorf("unexpected folders %v", snap.FoldersWithFailedTransferFiles)
	}
	if len(snap.ConflictedFiles) != 0 {
		t.Errorf("expected no conflicts while disabled, got %v", snap.ConflictedFiles)
	}
	if !snap.FailedTransferAlertsEnabled || snap.ConflictedFileAlertsEnabled {
		t.Errorf("unexpected toggles %+v", snap)
	}

	snap.FoldersWithFailedTransferFiles[0] = "mutated"
	if f.manager.FoldersWithFailedTransferFiles()[0] != "A" {
		t.Error("snapshot shares storage with the manager")
	}
}

func TestSnapshot_EncodeJSON(t *testing.T) {
	f := newFixture(t, WithConflictedFileAlerts(true))
	f.conflicts.report("/sync/a.sync-conflict-20240101-120000.txt")

	data, err := f.manager.Snapshot().Encode(JSONCodec{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["any_alerts"] != true {
		t.Errorf("expected any_alerts true, got %v", decoded["any_alerts"])
	}
	folders, ok := decoded["folders_with_failed_transfer_files"].([]any)
	if !ok || len(folders) != 0 {
		t.Errorf("expected empty folder list, got %v", decoded["folders_with_failed_transfer_files"])
	}
}

func TestSnapshot_EncodeYAML(t *testing.T) {
	f := newFixture(t)

	data, err := f.manager.Snapshot().Encode(YAMLCodec{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "any_alerts: false") {
		t.Errorf("unexpected YAML %q", data)
	}
}

type failingCodec struct{ JSONCodec }

func (failingCodec) Marshal(any) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestSnapshot_EncodeError(t *testing.T) {
	_, err := Snapshot{}.Encode(failingCodec{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "application/json") {
		t.Errorf("expected content type in error, got %v", err)
	}
}
