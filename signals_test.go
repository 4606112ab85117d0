package alertz

import "testing"

func TestManagerSignals(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{AlertsStateChanged.Name(), "alertz.alerts.state.changed"},
		{TransfersChanged.Name(), "alertz.transfers.changed"},
		{TransfersUnchanged.Name(), "alertz.transfers.unchanged"},
		{ConflictsChanged.Name(), "alertz.conflicts.changed"},
		{ToggleChanged.Name(), "alertz.toggle.changed"},
		{ManagerClosed.Name(), "alertz.manager.closed"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, tt.got)
		}
	}
}

func TestSettingsSignals(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SettingsStarted.Name(), "alertz.settings.started"},
		{SettingsStopped.Name(), "alertz.settings.stopped"},
		{SettingsStateChanged.Name(), "alertz.settings.state.changed"},
		{SettingsChangeReceived.Name(), "alertz.settings.change.received"},
		{SettingsDecodeFailed.Name(), "alertz.settings.decode.failed"},
		{SettingsValidationFailed.Name(), "alertz.settings.validation.failed"},
		{SettingsApplyFailed.Name(), "alertz.settings.apply.failed"},
		{SettingsApplied.Name(), "alertz.settings.applied"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, tt.got)
		}
	}
}
