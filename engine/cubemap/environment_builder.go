package cubemap

import "go.uber.org/zap"

// EnvironmentLoaderBuilderOption configures an EnvironmentLoader during construction.
type EnvironmentLoaderBuilderOption func(*EnvironmentLoader)

// WithEnvironmentTimeout is an option builder that fails maps still pending after the given time.
//
// Parameters:
//   - seconds: the load timeout (0 waits forever)
//
// Returns:
//   - EnvironmentLoaderBuilderOption: a function that applies the timeout option to a loader
func WithEnvironmentTimeout(seconds float64) EnvironmentLoaderBuilderOption {
	return func(e *EnvironmentLoader) {
		e.timeout = seconds
	}
}

// WithEnvironmentLogger is an option builder that sets the logger used by the EnvironmentLoader.
//
// Parameters:
//   - l: the logger (nil uses the shared logger)
//
// Returns:
//   - EnvironmentLoaderBuilderOption: a function that applies the logger option to a loader
func WithEnvironmentLogger(l *zap.Logger) EnvironmentLoaderBuilderOption {
	return func(e *EnvironmentLoader) {
		e.log = l
	}
}
