package cubemap

import "fmt"

// DefaultSwapDelay is the number of seconds between automatic cubemap swaps.
const DefaultSwapDelay = 3.0

// RearmPolicy decides when a SwapScheduler fires again after it has fired once.
type RearmPolicy int

const (
	// RearmDelay re-arms the timer for another full delay after every firing.
	RearmDelay RearmPolicy = iota

	// RearmImmediate fires once after the initial delay and then on every later tick.
	RearmImmediate
)

func (p RearmPolicy) String() string {
	switch p {
	case RearmDelay:
		return "delay"
	case RearmImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("RearmPolicy(%d)", int(p))
	}
}

// ParseRearmPolicy converts a policy name ("delay" or "immediate") to a RearmPolicy.
// An empty name selects RearmDelay.
func ParseRearmPolicy(s string) (RearmPolicy, error) {
	switch s {
	case "", "delay":
		return RearmDelay, nil
	case "immediate":
		return RearmImmediate, nil
	default:
		return RearmDelay, fmt.Errorf("unknown rearm policy %q", s)
	}
}

type schedulerState int

const (
	schedulerIdle schedulerState = iota
	schedulerArmed
	schedulerFired
)

// SwapScheduler decides on which ticks the controller should cycle to the next candidate.
// The first tick only arms the timer; a tick at or past the deadline fires.
// A SwapScheduler is not safe for concurrent use.
type SwapScheduler struct {
	delay    float64
	policy   RearmPolicy
	state    schedulerState
	deadline float64
}

// NewSwapScheduler creates an idle SwapScheduler.
//
// Parameters:
//   - delay: seconds between the arming tick and the first firing (negative values become 0)
//   - policy: how the timer re-arms after firing
//
// Returns:
//   - *SwapScheduler: the scheduler
func NewSwapScheduler(delay float64, policy RearmPolicy) *SwapScheduler {
	return &SwapScheduler{
		delay:  max(delay, 0),
		policy: policy,
	}
}

// Tick advances the scheduler to the given time.
//
// Parameters:
//   - now: elapsed seconds since startup
//
// Returns:
//   - bool: true if a swap is due on this tick
func (s *SwapScheduler) Tick(now float64) bool {
	switch s.state {
	case schedulerIdle:
		s.state = schedulerArmed
		s.deadline = now + s.delay
		return false
	case schedulerFired:
		return true
	}

	if now < s.deadline {
		return false
	}

	switch s.policy {
	case RearmImmediate:
		s.state = schedulerFired
	default:
		s.deadline = now + s.delay
	}
	return true
}

// Reset returns the scheduler to its idle state; the next Tick arms it again.
func (s *SwapScheduler) Reset() {
	s.state = schedulerIdle
	s.deadline = 0
}

// Deadline returns the time of the next firing and whether the timer is armed.
func (s *SwapScheduler) Deadline() (float64, bool) {
	return s.deadline, s.state == schedulerArmed
}

// Delay returns the configured delay in seconds.
func (s *SwapScheduler) Delay() float64 {
	return s.delay
}

// Policy returns the configured re-arm policy.
func (s *SwapScheduler) Policy() RearmPolicy {
	return s.policy
}
