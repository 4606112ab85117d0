package alertz

import "context"

// config holds construction options for a Manager.
type config struct {
	ctx                    context.Context
	metrics                MetricsProvider
	failedTransfersEnabled bool
	conflictedFilesEnabled bool
}

// Option configures a Manager.
type Option func(*config)

// WithContext sets the context attached to the capitan events a Manager emits.
// Default: context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithMetrics installs a metrics provider.
func WithMetrics(provider MetricsProvider) Option {
	return func(c *config) {
		c.metrics = provider
	}
}

// WithFailedTransferAlerts sets the initial failed-transfer toggle.
func WithFailedTransferAlerts(enabled bool) Option {
	return func(c *config) {
		c.failedTransfersEnabled = enabled
	}
}

// WithConflictedFileAlerts sets the initial conflicted-file toggle.
func WithConflictedFileAlerts(enabled bool) Option {
	return func(c *config) {
		c.conflictedFilesEnabled = enabled
	}
}
