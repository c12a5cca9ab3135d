package cubemap

import (
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"

	"go.uber.org/zap"
)

// ControllerBuilderOption is a functional option for configuring a Controller via NewController.
type ControllerBuilderOption func(*controller)

// WithCandidates is an option builder that sets the candidate table.
// The table is copied; an empty table leaves the controller idle.
//
// Parameters:
//   - table: the ordered candidate encodings
//
// Returns:
//   - ControllerBuilderOption: a function that applies the candidates option to a controller
func WithCandidates(table texture.CandidateTable) ControllerBuilderOption {
	return func(c *controller) {
		c.table = table.Clone()
	}
}

// WithStartIndex is an option builder that sets the candidate requested by Start.
//
// Parameters:
//   - index: the start index into the candidate table
//
// Returns:
//   - ControllerBuilderOption: a function that applies the start index option to a controller
func WithStartIndex(index int) ControllerBuilderOption {
	return func(c *controller) {
		c.startIndex = index
	}
}

// WithSwapDelay is an option builder that sets the seconds between automatic swaps.
//
// Parameters:
//   - seconds: the swap delay (negative values are ignored)
//
// Returns:
//   - ControllerBuilderOption: a function that applies the swap delay option to a controller
func WithSwapDelay(seconds float64) ControllerBuilderOption {
	return func(c *controller) {
		if seconds >= 0 {
			c.swapDelay = seconds
		}
	}
}

// WithRearmPolicy is an option builder that sets how the swap timer re-arms after firing.
//
// Parameters:
//   - policy: the re-arm policy
//
// Returns:
//   - ControllerBuilderOption: a function that applies the re-arm policy option to a controller
func WithRearmPolicy(policy RearmPolicy) ControllerBuilderOption {
	return func(c *controller) {
		c.rearmPolicy = policy
	}
}

// WithLoadTimeout is an option builder that fails loads still pending after the given time.
//
// Parameters:
//   - seconds: the load timeout (0 waits forever)
//
// Returns:
//   - ControllerBuilderOption: a function that applies the timeout option to a controller
func WithLoadTimeout(seconds float64) ControllerBuilderOption {
	return func(c *controller) {
		c.loadTimeout = seconds
	}
}

// WithRetryDelay is an option builder that sets how long FailureRetry waits before requesting a
// failed candidate again. Negative values are ignored.
//
// Parameters:
//   - seconds: the retry delay (0 retries on the next tick)
//
// Returns:
//   - ControllerBuilderOption: a function that applies the retry delay option to a controller
func WithRetryDelay(seconds float64) ControllerBuilderOption {
	return func(c *controller) {
		if seconds >= 0 {
			c.retryDelay = seconds
		}
	}
}

// WithFailurePolicy is an option builder that sets the reaction to a failed load.
//
// Parameters:
//   - policy: the failure policy
//
// Returns:
//   - ControllerBuilderOption: a function that applies the failure policy option to a controller
func WithFailurePolicy(policy FailurePolicy) ControllerBuilderOption {
	return func(c *controller) {
		c.failurePolicy = policy
	}
}

// WithConsumers is an option builder that registers the slots loaded cubemaps are bound to.
//
// Parameters:
//   - slots: the consumer slots
//
// Returns:
//   - ControllerBuilderOption: a function that applies the consumers option to a controller
func WithConsumers(slots ...TextureSlot) ControllerBuilderOption {
	return func(c *controller) {
		c.binder.Register(slots...)
	}
}

// WithLogger is an option builder that sets the logger used by the Controller.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ControllerBuilderOption: a function that applies the logger option to a controller
func WithLogger(l *zap.Logger) ControllerBuilderOption {
	return func(c *controller) {
		c.log = l
	}
}

// WithStatusCallback is an option builder that sets a callback receiving the status line
// whenever a load is requested, completes, or fails.
//
// Parameters:
//   - fn: the status callback
//
// Returns:
//   - ControllerBuilderOption: a function that applies the status callback option to a controller
func WithStatusCallback(fn StatusFunc) ControllerBuilderOption {
	return func(c *controller) {
		c.onStatus = fn
	}
}
