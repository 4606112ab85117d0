package alertz

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key Manager events.
type MetricsProvider interface {
	// OnAlertsStateChanged is called for every unified change notification.
	OnAlertsStateChanged(anyAlerts bool)

	// OnTransfersEvaluated is called after each transfer notification.
	// changed reports whether the failing folder set differed.
	OnTransfersEvaluated(changed bool, folders int)

	// OnConflictsReplaced is called after each conflict notification.
	OnConflictsReplaced(files int)

	// OnToggle is called when a category is enabled or disabled.
	OnToggle(category Category, enabled bool)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnAlertsStateChanged(_ bool)        {}
func (NoOpMetricsProvider) OnTransfersEvaluated(_ bool, _ int) {}
func (NoOpMetricsProvider) OnConflictsReplaced(_ int)          {}
func (NoOpMetricsProvider) OnToggle(_ Category, _ bool)        {}
