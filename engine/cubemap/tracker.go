package cubemap

import "github.com/Carmen-Shannon/oxy-cubemap/engine/asset"

// StatusSource reports the completion state of asset loads without blocking.
type StatusSource interface {
	// Status returns the current load status of h.
	Status(h asset.Handle) asset.LoadStatus
}

// Transition is the outcome of a LoadTracker poll.
type Transition int

const (
	// TransitionNone means nothing changed on this poll.
	TransitionNone Transition = iota

	// TransitionLoaded means the tracked load finished on this poll.
	TransitionLoaded

	// TransitionFailed means the tracked load failed or timed out on this poll.
	TransitionFailed
)

func (t Transition) String() string {
	switch t {
	case TransitionLoaded:
		return "loaded"
	case TransitionFailed:
		return "failed"
	default:
		return "none"
	}
}

type trackerState int

const (
	trackerIdle trackerState = iota
	trackerRequested
	trackerLoaded
	trackerFailed
)

// LoadTracker follows one outstanding asset load across ticks and reports its completion
// exactly once. Beginning a new load abandons the previous one.
// The tracker does not own a reference to the handle it follows.
type LoadTracker struct {
	timeout     float64
	state       trackerState
	handle      asset.Handle
	requestedAt float64
}

// NewLoadTracker creates an idle LoadTracker.
//
// Parameters:
//   - timeout: seconds after which a still-pending load is reported as failed (0 waits forever)
//
// Returns:
//   - *LoadTracker: the tracker
func NewLoadTracker(timeout float64) *LoadTracker {
	return &LoadTracker{timeout: max(timeout, 0)}
}

// Begin starts tracking h, requested at time now.
func (t *LoadTracker) Begin(h asset.Handle, now float64) {
	t.handle = h
	t.requestedAt = now
	t.state = trackerRequested
}

// Poll checks the tracked load against src.
//
// Parameters:
//   - now: elapsed seconds since startup
//   - src: the status source that owns the handle
//
// Returns:
//   - Transition: TransitionLoaded or TransitionFailed on the first poll that observes the
//     outcome, TransitionNone otherwise
func (t *LoadTracker) Poll(now float64, src StatusSource) Transition {
	if t.state != trackerRequested {
		return TransitionNone
	}

	switch src.Status(t.handle) {
	case asset.StatusLoaded:
		t.state = trackerLoaded
		return TransitionLoaded
	case asset.StatusFailed:
		t.state = trackerFailed
		return TransitionFailed
	}

	if t.timeout > 0 && now-t.requestedAt >= t.timeout {
		t.state = trackerFailed
		return TransitionFailed
	}
	return TransitionNone
}

// Pending reports whether a load is outstanding.
func (t *LoadTracker) Pending() bool {
	return t.state == trackerRequested
}

// Loaded reports whether the tracked load has completed successfully.
func (t *LoadTracker) Loaded() bool {
	return t.state == trackerLoaded
}

// Failed reports whether the tracked load failed or timed out.
func (t *LoadTracker) Failed() bool {
	return t.state == trackerFailed
}

// Elapsed returns the seconds since the tracked load was requested.
func (t *LoadTracker) Elapsed(now float64) float64 {
	if t.state == trackerIdle {
		return 0
	}
	return now - t.requestedAt
}
