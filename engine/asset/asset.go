package asset

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/logger"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// entry is the server-side record of one asset.
type entry struct {
	id     uint64
	path   string
	status LoadStatus
	meta   texture.Metadata
	err    error
	refs   int

	// reload is set when the file changed while a decode was in flight.
	reload bool
}

// server is the implementation of the Server interface.
type server struct {
	mu sync.RWMutex

	fsys     fs.FS
	root     string
	rootFS   bool
	workers  int
	log      *zap.Logger
	backends map[string]assetBackend

	pool    worker.DynamicWorkerPool
	nextID  atomic.Uint64
	pending atomic.Int64
	closed  bool

	entries map[uint64]*entry
	byPath  map[string]uint64

	watch     bool
	watcher   *fsnotify.Watcher
	watched   map[string]bool
	watchDone chan struct{}
	changes   chan string
}

// Server defines the public-facing interface for asynchronous texture asset loading.
// Loads are issued without blocking and decoded on a worker pool; callers poll Status from
// their own tick loop. Assets are reference counted through their Handles and reclaimed when
// the last reference is released.
type Server interface {
	RefCounter

	// Load issues a non-blocking load of the asset at path and returns a handle owning one
	// reference. Loading a path that is already resident returns a new reference to the same asset;
	// a path whose previous load failed is decoded again.
	//
	// Parameters:
	//   - path: the slash-separated asset identifier relative to the server root
	//
	// Returns:
	//   - Handle: a handle owning one reference to the asset
	Load(path string) Handle

	// Status reports the completion state of a load. It never blocks.
	//
	// Parameters:
	//   - h: the handle to query
	//
	// Returns:
	//   - LoadStatus: the current status (StatusFailed for unknown or reclaimed handles)
	Status(h Handle) LoadStatus

	// GetMutable returns the metadata of a loaded asset for in-place modification.
	// The pointer stays valid while the caller holds a reference to the asset and must only be
	// mutated from the goroutine that owns the handle.
	//
	// Parameters:
	//   - h: the handle of a loaded asset
	//
	// Returns:
	//   - *texture.Metadata: the mutable metadata
	//   - bool: false if the asset is unknown or not yet loaded
	GetMutable(h Handle) (*texture.Metadata, bool)

	// Err returns the error that failed a load, or nil.
	//
	// Parameters:
	//   - h: the handle to query
	//
	// Returns:
	//   - error: the load error, or nil
	Err(h Handle) error

	// Pending returns the number of loads that have not finished decoding.
	//
	// Returns:
	//   - int: the number of in-flight loads
	Pending() int

	// Resident returns the number of assets currently held by at least one reference.
	//
	// Returns:
	//   - int: the number of resident assets
	Resident() int

	// Reload decodes a resident asset again, for example after its file changed on disk.
	// The asset keeps its ID and reports StatusPending until the new decode finishes. Reloading
	// an asset that is still decoding queues one more decode after the current one.
	//
	// Parameters:
	//   - path: the asset identifier
	//
	// Returns:
	//   - bool: false if the asset is not resident or the server is closed
	Reload(path string) bool

	// Changes delivers the identifiers of assets reloaded by Reload or by the file watcher.
	// Sends never block; changes are dropped while the channel is full.
	//
	// Returns:
	//   - <-chan string: the change notifications
	Changes() <-chan string

	// Close stops the file watcher and the worker pool. Loads issued after Close fail immediately.
	Close()
}

var _ Server = &server{}

// NewServer creates a new asset Server with the specified options applied.
// Without WithFS the server reads from the working directory (or WithRoot).
//
// Parameters:
//   - options: a variadic list of ServerBuilderOption functions to configure the Server
//
// Returns:
//   - Server: a new Server with a running worker pool
func NewServer(options ...ServerBuilderOption) Server {
	s := &server{
		mu:       sync.RWMutex{},
		root:     ".",
		workers:  2,
		backends: defaultBackends(),
		entries:  make(map[uint64]*entry),
		byPath:   make(map[string]uint64),
		watched:  make(map[string]bool),
		changes:  make(chan string, 16),
	}

	for _, option := range options {
		option(s)
	}

	if s.fsys == nil {
		s.fsys = os.DirFS(s.root)
		s.rootFS = true
	}
	s.log = logger.Or(s.log).Named("asset")
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	s.startWatcher()
	return s
}

func (s *server) Load(p string) Handle {
	p = path.Clean(p)

	s.mu.Lock()
	if id, ok := s.byPath[p]; ok {
		e := s.entries[id]
		if e.status != StatusFailed {
			e.refs++
			s.mu.Unlock()
			return NewHandle(id, p, s)
		}
		// failed assets are decoded again under a fresh ID
		delete(s.byPath, p)
	}

	e := &entry{
		id:     s.nextID.Add(1),
		path:   p,
		status: StatusPending,
		refs:   1,
	}
	s.entries[e.id] = e
	s.byPath[p] = e.id
	closed := s.closed
	s.watchDir(path.Dir(p))
	s.mu.Unlock()

	h := NewHandle(e.id, p, s)
	if closed {
		s.finish(e.id, texture.Metadata{}, ErrClosed)
		return h
	}

	s.log.Debug("load requested", zap.String("path", p), zap.Uint64("id", e.id))
	s.submit(e.id, p)
	return h
}

// submit queues the decode of an entry on the worker pool.
func (s *server) submit(id uint64, p string) {
	s.pending.Add(1)
	s.pool.SubmitTask(worker.Task{
		ID: int(id),
		Do: func() (any, error) {
			meta, err := s.decode(p)
			if s.finish(id, meta, err) {
				s.submit(id, p)
			}
			s.pending.Add(-1)
			return meta, err
		},
	})
}

func (s *server) Reload(p string) bool {
	p = path.Clean(p)

	s.mu.Lock()
	id, ok := s.byPath[p]
	if !ok || s.closed {
		s.mu.Unlock()
		return false
	}
	e := s.entries[id]
	decoding := e.status == StatusPending
	if decoding {
		e.reload = true
	} else {
		e.status = StatusPending
		e.err = nil
	}
	s.mu.Unlock()

	if !decoding {
		s.submit(id, p)
	}
	select {
	case s.changes <- p:
	default:
	}
	return true
}

func (s *server) Changes() <-chan string {
	return s.changes
}

// decode opens the asset and runs the backend registered for its extension.
func (s *server) decode(p string) (texture.Metadata, error) {
	backend, ok := s.backends[extension(p)]
	if !ok {
		return texture.Metadata{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
	}

	f, err := s.fsys.Open(p)
	if err != nil {
		return texture.Metadata{}, fmt.Errorf("failed to open asset %s: %w", p, err)
	}
	defer f.Close()

	meta, err := backend.Decode(f)
	if err != nil {
		return texture.Metadata{}, fmt.Errorf("failed to decode asset %s: %w", p, err)
	}
	return meta, nil
}

// finish records the outcome of a decode. Results for reclaimed assets are dropped.
// It reports true when a reload was queued meanwhile and the asset must be decoded again.
func (s *server) finish(id uint64, meta texture.Metadata, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false
	}
	if e.reload && !s.closed {
		e.reload = false
		return true
	}
	if err != nil {
		e.status = StatusFailed
		e.err = err
		s.log.Warn("asset load failed", zap.String("path", e.path), zap.Error(err))
		return false
	}
	e.status = StatusLoaded
	e.meta = meta
	s.log.Debug("asset loaded", zap.String("path", e.path), zap.Stringer("metadata", meta))
	return false
}

func (s *server) Status(h Handle) LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[h.ID()]
	if !ok {
		return StatusFailed
	}
	return e.status
}

func (s *server) GetMutable(h Handle) (*texture.Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[h.ID()]
	if !ok || e.status != StatusLoaded {
		return nil, false
	}
	return &e.meta, true
}

func (s *server) Err(h Handle) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[h.ID()]
	if !ok {
		return fmt.Errorf("asset: unknown handle %s", h)
	}
	return e.err
}

func (s *server) Pending() int {
	return int(s.pending.Load())
}

func (s *server) Resident() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *server) Retain(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.refs++
	}
}

func (s *server) Release(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}

	delete(s.entries, id)
	if s.byPath[e.path] == id {
		delete(s.byPath, e.path)
	}
	s.log.Debug("asset reclaimed", zap.String("path", e.path), zap.Uint64("id", id))
}

func (s *server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.stopWatcher()
	s.pool.Stop()
}
