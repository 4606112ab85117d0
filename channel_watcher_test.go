package alertz

import (
	"context"
	"testing"
	"time"
)

func TestChannelWatcher_ForwardsSettings(t *testing.T) {
	source := make(chan []byte, 2)
	source <- []byte("failed_transfer_alerts: true")
	source <- []byte("failed_transfer_alerts: false")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	for _, want := range []string{"failed_transfer_alerts: true", "failed_transfer_alerts: false"} {
		select {
		case v := <-out:
			if string(v) != want {
				t.Errorf("expected %q, got %q", want, v)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout waiting for %q", want)
		}
	}
}

func TestChannelWatcher_ClosesOnSourceClose(t *testing.T) {
	source := make(chan []byte)
	close(source)

	out, err := NewChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestChannelWatcher_ClosesOnContextCancel(t *testing.T) {
	source := make(chan []byte)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestSyncChannelWatcher_ReturnsSource(t *testing.T) {
	source := make(chan []byte, 1)
	source <- []byte("x")

	out, err := NewSyncChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case v := <-out:
		if string(v) != "x" {
			t.Errorf("expected 'x', got %q", v)
		}
	default:
		t.Error("expected value to be immediately available")
	}
}

func TestSettingsChannelWatcher_EncodesSettings(t *testing.T) {
	on, off := true, false
	source := make(chan Settings, 1)
	source <- Settings{FailedTransferAlerts: &on, ConflictedFileAlerts: &off}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewSettingsChannelWatcher(source, nil).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case v := <-out:
		want := `{"failed_transfer_alerts":true,"conflicted_file_alerts":false}`
		if string(v) != want {
			t.Errorf("expected %s, got %s", want, v)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for encoded settings")
	}
}

func TestSettingsChannelWatcher_UsesCodec(t *testing.T) {
	on := true
	source := make(chan Settings, 1)
	source <- Settings{FailedTransferAlerts: &on, ConflictedFileAlerts: &on}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewSettingsChannelWatcher(source, YAMLCodec{}).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case v := <-out:
		want := "failed_transfer_alerts: true\nconflicted_file_alerts: true\n"
		if string(v) != want {
			t.Errorf("expected %q, got %q", want, v)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for encoded settings")
	}
}

func TestSettingsChannelWatcher_DrivesManager(t *testing.T) {
	loop := NewLoop(4)
	stop := runLoop(t, loop)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	history := &fakeHistory{}
	var m *Manager
	if err := loop.Do(ctx, func() {
		m = New(history, &fakeConflicts{})
		history.fail("A")
	}); err != nil {
		t.Fatal(err)
	}

	on, off := true, false
	menu := make(chan Settings, 2)
	menu <- Settings{FailedTransferAlerts: &off, ConflictedFileAlerts: &off}

	s := NewSettingsWatcher(NewSettingsChannelWatcher(menu, nil), m, loop).Debounce(time.Millisecond)
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	menu <- Settings{FailedTransferAlerts: &on, ConflictedFileAlerts: &off}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		var alerting bool
		if err := loop.Do(ctx, func() { alerting = m.AnyAlerts() }); err != nil {
			t.Fatal(err)
		}
		if alerting {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("settings from the channel never enabled failed transfer alerts")
}

func TestSettingsChannelWatcher_IncompleteSettingsRejected(t *testing.T) {
	f := newFixture(t)
	on := true
	menu := make(chan Settings, 1)
	menu <- Settings{FailedTransferAlerts: &on}

	s := NewSettingsWatcher(NewSettingsChannelWatcher(menu, nil), f.manager, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.Start(ctx); err == nil {
		t.Error("expected settings without a conflicted file toggle to be rejected")
	}
	if f.manager.FailedTransferAlertsEnabled() {
		t.Error("expected nothing applied")
	}
}
