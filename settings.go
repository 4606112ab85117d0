package alertz

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for settings changes.
const DefaultDebounce = 100 * time.Millisecond

// validate is the shared validator instance.
var validate = validator.New()

// Settings holds the alert toggles as read from a settings document:
//
//	failed_transfer_alerts: true
//	conflicted_file_alerts: false
//
// Both keys are required so that a misspelled key is rejected instead of
// silently disabling a category.
type Settings struct {
	FailedTransferAlerts *bool `json:"failed_transfer_alerts" yaml:"failed_transfer_alerts" validate:"required"`
	ConflictedFileAlerts *bool `json:"conflicted_file_alerts" yaml:"conflicted_file_alerts" validate:"required"`
}

// Validate reports whether both toggles are present.
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// ApplyTo sets both toggles on m. It must run on m's owner goroutine.
func (s Settings) ApplyTo(m *Manager) {
	if s.FailedTransferAlerts != nil {
		m.SetFailedTransferAlertsEnabled(*s.FailedTransferAlerts)
	}
	if s.ConflictedFileAlerts != nil {
		m.SetConflictedFileAlertsEnabled(*s.ConflictedFileAlerts)
	}
}

// SettingsState represents the current state of a SettingsWatcher.
type SettingsState int32

const (
	// SettingsLoading indicates no settings document has been processed yet.
	SettingsLoading SettingsState = iota

	// SettingsHealthy indicates the latest document was applied.
	SettingsHealthy

	// SettingsDegraded indicates the latest document was rejected. The
	// previously applied settings remain in effect.
	SettingsDegraded

	// SettingsEmpty indicates no document has ever been applied. The watcher
	// keeps waiting for a valid one.
	SettingsEmpty
)

// String returns the string representation of the state.
func (s SettingsState) String() string {
	switch s {
	case SettingsLoading:
		return "loading"
	case SettingsHealthy:
		return "healthy"
	case SettingsDegraded:
		return "degraded"
	case SettingsEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// SettingsWatcher reads alert toggles from a Watcher and applies them to a
// Manager. It only reads; nothing is ever written back to the source.
type SettingsWatcher struct {
	watcher  Watcher
	manager  *Manager
	loop     *Loop
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec

	state     atomic.Int32
	current   atomic.Pointer[Settings]
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewSettingsWatcher creates a SettingsWatcher that applies settings from
// watcher to manager.
//
// When loop is non-nil, settings are applied on the loop goroutine. When it
// is nil, they are applied on whichever goroutine processes them, which is
// only correct in sync mode driven from the Manager's owner goroutine.
//
// Example:
//
//	settings := alertz.NewSettingsWatcher(
//	    alertz.NewFileWatcher("/etc/tray/alerts.yaml"),
//	    manager,
//	    loop,
//	).Debounce(250 * time.Millisecond)
//
//	if err := settings.Start(ctx); err != nil {
//	    log.Printf("initial settings rejected: %v", err)
//	}
func NewSettingsWatcher(watcher Watcher, manager *Manager, loop *Loop) *SettingsWatcher {
	s := &SettingsWatcher{
		watcher:  watcher,
		manager:  manager,
		loop:     loop,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    AutoCodec{},
	}
	s.state.Store(int32(SettingsLoading))
	return s
}

// Debounce sets the debounce duration for change processing.
// Changes arriving within this duration are coalesced into a single update.
// Must be called before Start().
func (s *SettingsWatcher) Debounce(d time.Duration) *SettingsWatcher {
	s.debounce = d
	return s
}

// SyncMode enables synchronous processing for testing.
// In sync mode, changes are processed only through Process(), without
// debouncing or goroutines. Must be called before Start().
func (s *SettingsWatcher) SyncMode() *SettingsWatcher {
	s.syncMode = true
	return s
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (s *SettingsWatcher) Clock(clock clockz.Clock) *SettingsWatcher {
	s.clock = clock
	return s
}

// Codec sets the codec for decoding settings documents.
// Default: AutoCodec. Must be called before Start().
func (s *SettingsWatcher) Codec(codec Codec) *SettingsWatcher {
	s.codec = codec
	return s
}

// State returns the current state of the SettingsWatcher.
func (s *SettingsWatcher) State() SettingsState {
	return SettingsState(s.state.Load())
}

// Current returns the last applied settings and true, or the zero value and
// false if nothing has been applied.
func (s *SettingsWatcher) Current() (Settings, bool) {
	ptr := s.current.Load()
	if ptr == nil {
		return Settings{}, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil after a successful apply.
func (s *SettingsWatcher) LastError() error {
	ptr := s.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching. It blocks until the first document is processed,
// then continues watching in the background until ctx is canceled.
//
// If the first document is rejected, Start returns the error but keeps
// watching for a valid one. In sync mode, only the first document is
// processed; use Process() for the rest.
//
// Start must not be called from the loop goroutine, and only once.
func (s *SettingsWatcher) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("settings watcher: %w", ErrAlreadyStarted)
	}
	s.started = true
	s.mu.Unlock()

	capitan.Emit(ctx, SettingsStarted,
		KeyDebounce.Field(s.debounce),
	)

	changes, err := s.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial settings")
		}
		capitan.Emit(ctx, SettingsChangeReceived)
		initialErr = s.process(ctx, raw)
	}

	if s.syncMode {
		s.changes = changes
		return initialErr
	}

	go s.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next document from the watcher.
// It is only available in sync mode and is used for deterministic testing.
// Returns false if no document is available or the channel is closed.
func (s *SettingsWatcher) Process(ctx context.Context) bool {
	if !s.syncMode {
		return false
	}

	select {
	case raw, ok := <-s.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, SettingsChangeReceived)
		_ = s.process(ctx, raw) //nolint:errcheck // Errors stored via fail
		return true
	default:
		return false
	}
}

// process decodes, validates, and applies a single settings document.
func (s *SettingsWatcher) process(ctx context.Context, raw []byte) error {
	oldState := s.State()

	var settings Settings
	if err := s.codec.Unmarshal(raw, &settings); err != nil {
		s.fail(ctx, oldState, err)
		capitan.Emit(ctx, SettingsDecodeFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("decode settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		s.fail(ctx, oldState, err)
		capitan.Emit(ctx, SettingsValidationFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validate settings: %w", err)
	}

	if err := s.apply(ctx, settings); err != nil {
		s.fail(ctx, oldState, err)
		capitan.Emit(ctx, SettingsApplyFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply settings: %w", err)
	}

	s.current.Store(&settings)
	s.lastError.Store(nil)
	s.transitionState(ctx, oldState, SettingsHealthy)
	capitan.Emit(ctx, SettingsApplied,
		KeyCategory.Field(CategoryFailedTransfers.String()),
		KeyEnabled.Field(*settings.FailedTransferAlerts),
	)
	capitan.Emit(ctx, SettingsApplied,
		KeyCategory.Field(CategoryConflictedFiles.String()),
		KeyEnabled.Field(*settings.ConflictedFileAlerts),
	)

	return nil
}

func (s *SettingsWatcher) apply(ctx context.Context, settings Settings) error {
	if s.loop == nil {
		settings.ApplyTo(s.manager)
		return nil
	}
	return s.loop.Do(ctx, func() {
		settings.ApplyTo(s.manager)
	})
}

// fail stores err and moves to the appropriate failure state.
func (s *SettingsWatcher) fail(ctx context.Context, oldState SettingsState, err error) {
	e := err
	s.lastError.Store(&e)
	s.transitionState(ctx, oldState, s.failureState())
}

// failureState returns the appropriate failure state based on whether
// settings have ever been applied.
func (s *SettingsWatcher) failureState() SettingsState {
	if s.current.Load() == nil {
		return SettingsEmpty
	}
	return SettingsDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (s *SettingsWatcher) transitionState(ctx context.Context, oldState, newState SettingsState) {
	if oldState == newState {
		return
	}
	s.state.Store(int32(newState))
	capitan.Emit(ctx, SettingsStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// watch processes changes from the watcher channel with debouncing.
func (s *SettingsWatcher) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, SettingsStopped,
			KeyState.Field(s.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = s.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				}
				return
			}

			capitan.Emit(ctx, SettingsChangeReceived)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = s.clock.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(s.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = s.process(ctx, pending) //nolint:errcheck // Errors stored via fail
				hasPending = false
			}
		}
	}
}
