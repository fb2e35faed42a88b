package substate

// Option configures a SubscriptionState with optional dependencies.
type Option func(*stateOptions)

// stateOptions holds optional SubscriptionState configuration.
type stateOptions struct {
	logger  Logger
	metrics MetricsCollector
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	state, _ := substate.New(nil, substate.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *stateOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "consumer")
//	state, _ := substate.New(nil, substate.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *stateOptions) {
		o.metrics = metrics
	}
}
