package cubemap

import (
	"errors"
	"fmt"
	"path"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/logger"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"

	"go.uber.org/zap"
)

// FailurePolicy decides what the Controller does when a candidate fails to load.
type FailurePolicy int

const (
	// FailureAdvance selects the next eligible candidate immediately.
	FailureAdvance FailurePolicy = iota

	// FailureRetry requests the same candidate again after the retry delay. Malformed layouts are
	// not retried; they advance instead.
	FailureRetry

	// FailureHold keeps the consumers on the previous texture until the next scheduled swap.
	FailureHold
)

func (p FailurePolicy) String() string {
	switch p {
	case FailureAdvance:
		return "advance"
	case FailureRetry:
		return "retry"
	case FailureHold:
		return "hold"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy converts a policy name ("advance", "retry" or "hold") to a FailurePolicy.
// An empty name selects FailureAdvance.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "advance":
		return FailureAdvance, nil
	case "retry":
		return FailureRetry, nil
	case "hold":
		return FailureHold, nil
	default:
		return FailureAdvance, fmt.Errorf("unknown failure policy %q", s)
	}
}

// Assets is the part of the asset server the Controller depends on.
type Assets interface {
	StatusSource

	// Load issues a non-blocking load and returns a handle owning one reference.
	Load(path string) asset.Handle

	// GetMutable returns the metadata of a loaded asset for in-place modification.
	GetMutable(h asset.Handle) (*texture.Metadata, bool)
}

var _ Assets = asset.Server(nil)

// LoadState is the controller's view of the active cubemap.
// Index and Handle always refer to the same candidate.
type LoadState struct {
	// Loaded is true once the active handle has loaded, been reinterpreted and bound.
	Loaded bool

	// Index is the position of the active candidate in the table.
	Index int

	// Handle is the most recently requested handle.
	Handle asset.Handle
}

// DefaultRetryDelay is the seconds FailureRetry waits before requesting a failed candidate again.
const DefaultRetryDelay = 1.0

// Stats counts controller activity since construction.
type Stats struct {
	Index         int
	Path          string
	Loaded        bool
	Supported     texture.Capability
	Eligible      int
	Cycles        int
	Loads         int
	Skipped       int
	NoEligible    int
	Failures      int
	Malformed     int
	Retries       int
	Reinterpreted int
	Bound         int
	Reloads       int

	// SwapDelay and RearmPolicy describe the swap timer; NextSwap is zero while it is not armed.
	SwapDelay   float64
	RearmPolicy RearmPolicy
	NextSwap    float64
}

// StatusFunc receives a human-readable status line whenever the controller state changes.
type StatusFunc func(status string)

// controller is the implementation of the Controller interface.
type controller struct {
	probe  texture.CapabilityProbe
	assets Assets

	table         texture.CandidateTable
	startIndex    int
	swapDelay     float64
	rearmPolicy   RearmPolicy
	loadTimeout   float64
	failurePolicy FailurePolicy
	retryDelay    float64
	log           *zap.Logger
	onStatus      StatusFunc

	scheduler *SwapScheduler
	tracker   *LoadTracker
	binder    *Binder

	started bool
	state   LoadState
	stats   Stats

	// retryAt is when a FailureRetry request is due; retryPending is cleared by any new request.
	retryAt      float64
	retryPending bool

	// malformed holds the asset paths whose layout cannot be reinterpreted. They are skipped
	// until the file changes on disk.
	malformed map[string]bool
}

// Controller cycles a cubemap through the candidate encodings the device can sample.
// It is driven from a single tick goroutine and is not safe for concurrent use.
//
// On each Tick the swap timer is consulted first; when it fires the next supported candidate is
// requested. The outstanding load is then polled, and once it completes the flat image is
// reinterpreted as a cube and bound to every registered consumer.
type Controller interface {
	// Start requests the start candidate. Tick calls Start when it has not been called yet.
	//
	// Parameters:
	//   - now: elapsed seconds since startup
	Start(now float64)

	// Tick runs one update: swap timer, candidate selection, load polling and binding.
	//
	// Parameters:
	//   - now: elapsed seconds since startup
	Tick(now float64)

	// CycleNow selects the next supported candidate outside the swap timer.
	//
	// Parameters:
	//   - now: elapsed seconds since startup
	//
	// Returns:
	//   - bool: true if a new load was requested
	CycleNow(now float64) bool

	// Reload tracks the active asset again after the asset server started decoding it anew.
	// A path previously rejected as malformed becomes eligible again.
	//
	// Parameters:
	//   - now: elapsed seconds since startup
	//   - assetPath: the reloaded asset identifier
	//
	// Returns:
	//   - bool: true if assetPath is the active cubemap
	Reload(now float64, assetPath string) bool

	// State returns the current load state.
	//
	// Returns:
	//   - LoadState: a copy of the load state
	State() LoadState

	// Stats returns activity counters and the active candidate.
	//
	// Returns:
	//   - Stats: a snapshot of the counters
	Stats() Stats

	// Status returns the current human-readable status line.
	//
	// Returns:
	//   - string: the status line
	Status() string

	// Close releases the active handle and the references held by the consumers.
	Close()
}

var _ Controller = &controller{}

// NewController creates a new Controller with the specified options applied.
// Panics if probe or assets is nil.
//
// Parameters:
//   - probe: the device capability probe, queried on every selection
//   - assets: the asset server used to load candidates
//   - options: a variadic list of ControllerBuilderOption functions to configure the Controller
//
// Returns:
//   - Controller: a new Controller that has not requested anything yet
func NewController(probe texture.CapabilityProbe, assets Assets, options ...ControllerBuilderOption) Controller {
	if probe == nil {
		panic("cubemap: NewController requires a capability probe")
	}
	if assets == nil {
		panic("cubemap: NewController requires an asset server")
	}

	c := &controller{
		probe:       probe,
		assets:      assets,
		table:       texture.DefaultCubemapCandidates.Clone(),
		swapDelay:   DefaultSwapDelay,
		rearmPolicy: RearmDelay,
		retryDelay:  DefaultRetryDelay,
		binder:      NewBinder(),
		malformed:   make(map[string]bool),
	}

	for _, option := range options {
		option(c)
	}

	c.log = logger.Or(c.log).Named("cubemap")
	c.scheduler = NewSwapScheduler(c.swapDelay, c.rearmPolicy)
	c.tracker = NewLoadTracker(c.loadTimeout)
	c.state.Index = c.startIndex
	c.stats.Index = c.startIndex
	return c
}

func (c *controller) Start(now float64) {
	if c.started {
		return
	}
	c.started = true

	if !c.table.Valid(c.startIndex) {
		c.log.Warn("no cubemap candidates to load", zap.Int("candidates", c.table.Len()), zap.Int("start", c.startIndex))
		return
	}

	supported := c.probe.Supported()
	c.observe(supported)
	start := c.table[c.startIndex]
	if supported.Contains(start.Requires) {
		c.request(c.startIndex, now, false)
		return
	}

	c.logSkip(c.startIndex, start, supported)
	if !c.cycle(now) {
		c.log.Warn("no supported cubemap candidate", zap.Stringer("supported", supported))
	}
}

func (c *controller) Tick(now float64) {
	if !c.started {
		c.Start(now)
	}
	if c.scheduler.Tick(now) {
		c.cycle(now)
	} else if c.retryPending && now >= c.retryAt {
		c.retry(now)
	}
	c.poll(now)
}

func (c *controller) CycleNow(now float64) bool {
	if !c.started {
		c.Start(now)
		return c.state.Handle.IsValid()
	}
	return c.cycle(now)
}

func (c *controller) Reload(now float64, assetPath string) bool {
	delete(c.malformed, assetPath)

	h := c.state.Handle
	if !h.IsValid() || h.Path() != assetPath {
		return false
	}

	c.state.Loaded = false
	c.stats.Loaded = false
	c.stats.Reloads++
	c.retryPending = false
	c.tracker.Begin(h, now)
	c.log.Info("reloading cubemap", zap.String("path", assetPath))
	c.emitStatus()
	return true
}

func (c *controller) State() LoadState {
	return c.state
}

func (c *controller) Stats() Stats {
	stats := c.stats
	stats.Malformed = len(c.malformed)
	stats.SwapDelay = c.scheduler.Delay()
	stats.RearmPolicy = c.scheduler.Policy()
	if deadline, armed := c.scheduler.Deadline(); armed {
		stats.NextSwap = deadline
	}
	return stats
}

func (c *controller) Status() string {
	if !c.table.Valid(c.state.Index) {
		return "no cubemap"
	}
	cand := c.table[c.state.Index]
	switch {
	case !c.state.Handle.IsValid():
		return fmt.Sprintf("%s: unsupported", cand.Path)
	case c.state.Loaded:
		return fmt.Sprintf("%s (%s)", cand.Path, cand.Requires)
	case c.tracker.Failed():
		return fmt.Sprintf("%s (%s): failed", cand.Path, cand.Requires)
	default:
		return fmt.Sprintf("%s (%s): loading", cand.Path, cand.Requires)
	}
}

func (c *controller) Close() {
	c.binder.Unbind()
	c.state.Handle.Release()
	c.state = LoadState{Index: c.state.Index}
}

// cycle requests the next supported candidate after the active one.
func (c *controller) cycle(now float64) bool {
	supported := c.probe.Supported()
	c.observe(supported)
	c.stats.Cycles++

	current := c.state.Index
	next := c.selectNext(supported)

	if next == current {
		// the active candidate may have become sampleable after an unsupported start
		if !c.state.Handle.IsValid() && c.table.Valid(current) && supported.Contains(c.table[current].Requires) && !c.isMalformed(current) {
			c.request(current, now, false)
			return true
		}
		c.stats.NoEligible++
		c.log.Debug("no other eligible cubemap candidate", zap.Int("index", current), zap.Stringer("supported", supported))
		return false
	}

	c.request(next, now, false)
	return true
}

// selectNext picks the next supported candidate, passing over paths rejected as malformed.
// It returns the active index when nothing else is eligible.
func (c *controller) selectNext(supported texture.Capability) int {
	current := c.state.Index
	onSkip := func(i int, cand texture.Candidate) {
		c.logSkip(i, cand, supported)
	}

	from := current
	for range c.table.Len() {
		next := texture.SelectNext(c.table, from, supported, onSkip)
		if next == from || next == current {
			return current
		}
		if !c.isMalformed(next) {
			return next
		}
		c.log.Debug("skipping malformed cubemap", zap.Int("index", next), zap.String("path", c.table[next].Path))
		from = next
	}
	return current
}

func (c *controller) isMalformed(index int) bool {
	return c.malformed[path.Clean(c.table[index].Path)]
}

// observe records the capability set of the latest selection.
func (c *controller) observe(supported texture.Capability) {
	c.stats.Supported = supported
	c.stats.Eligible = len(texture.Eligible(c.table, supported))
}

// request issues the load for table[index] and makes it the active candidate.
// The previous handle is released after the new load is issued, so consumers and the server keep
// the asset resident; fresh releases it first so a failed or stalled entry is not reused.
func (c *controller) request(index int, now float64, fresh bool) {
	cand := c.table[index]
	old := c.state.Handle
	if fresh {
		old.Release()
		old = asset.Handle{}
	}

	h := c.assets.Load(cand.Path)
	c.state = LoadState{Loaded: false, Index: index, Handle: h}
	c.tracker.Begin(h, now)
	c.retryPending = false
	old.Release()

	c.stats.Loads++
	c.stats.Index = index
	c.stats.Path = cand.Path
	c.stats.Loaded = false
	c.log.Info("loading cubemap", zap.Int("index", index), zap.String("path", cand.Path), zap.Stringer("requires", cand.Requires))
	c.emitStatus()
}

// poll observes the outstanding load and finishes it on completion.
func (c *controller) poll(now float64) {
	switch c.tracker.Poll(now, c.assets) {
	case TransitionLoaded:
		c.finish(now)
	case TransitionFailed:
		c.fail(now, errors.New("load failed or timed out"))
	}
}

// retry requests the active candidate again once the retry delay has passed.
func (c *controller) retry(now float64) {
	c.stats.Retries++
	c.log.Info("retrying cubemap", zap.String("path", c.table[c.state.Index].Path))
	c.request(c.state.Index, now, true)
}

// finish reinterprets and binds the active handle once it has loaded.
func (c *controller) finish(now float64) {
	h := c.state.Handle
	meta, ok := c.assets.GetMutable(h)
	if !ok {
		c.fail(now, errors.New("loaded asset has no metadata"))
		return
	}

	changed, err := texture.Reinterpret(meta)
	if err != nil {
		c.log.Error("cannot reinterpret cubemap", zap.String("path", h.Path()), zap.Error(err))
		c.fail(now, err)
		return
	}
	if changed {
		c.stats.Reinterpreted++
	}

	c.stats.Bound += c.binder.Bind(h)
	c.state.Loaded = true
	c.stats.Loaded = true
	c.log.Info("cubemap loaded",
		zap.String("path", h.Path()),
		zap.Stringer("metadata", meta),
		zap.Float64("load_seconds", c.tracker.Elapsed(now)),
		zap.Strings("consumers", slotNames(c.binder.Slots())),
	)
	c.emitStatus()
}

// fail applies the failure policy to the active candidate. A malformed layout fails the same way
// on every load, so the path is excluded from selection and FailureRetry advances instead.
func (c *controller) fail(now float64, cause error) {
	c.stats.Failures++
	policy := c.failurePolicy
	if errors.Is(cause, texture.ErrMalformedLayout) {
		c.malformed[c.state.Handle.Path()] = true
		if policy == FailureRetry {
			policy = FailureAdvance
		}
	}

	c.log.Warn("cubemap candidate failed",
		zap.String("path", c.state.Handle.Path()),
		zap.NamedError("reason", cause),
		zap.Stringer("policy", policy),
	)
	c.emitStatus()

	switch policy {
	case FailureRetry:
		c.retryPending = true
		c.retryAt = now + c.retryDelay
	case FailureAdvance:
		c.cycle(now)
	}
}

func (c *controller) logSkip(index int, cand texture.Candidate, supported texture.Capability) {
	c.stats.Skipped++
	c.log.Info("skipping unsupported format",
		zap.Int("index", index),
		zap.String("path", cand.Path),
		zap.Stringer("requires", cand.Requires),
		zap.Stringer("supported", supported),
	)
}

func slotNames(slots []TextureSlot) []string {
	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.SlotName())
	}
	return names
}

func (c *controller) emitStatus() {
	if c.onStatus != nil {
		c.onStatus(c.Status())
	}
}
