package asset

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// startWatcher begins watching the asset root for modified files. It is a no-op when the server
// reads from a custom file system.
func (s *server) startWatcher() {
	if !s.watch || !s.rootFS {
		return
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Warn("asset watching disabled", zap.Error(err))
		return
	}
	s.watcher = w
	s.watchDir(".")

	s.watchDone = make(chan struct{})
	go s.watchLoop(w, s.watchDone)
}

// watchDir adds the directory of a slash-separated asset path to the watcher once.
func (s *server) watchDir(dir string) {
	if s.watcher == nil || s.watched[dir] {
		return
	}
	if err := s.watcher.Add(filepath.Join(s.root, filepath.FromSlash(dir))); err != nil {
		s.log.Debug("cannot watch asset directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	s.watched[dir] = true
}

func (s *server) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			p, ok := s.assetPath(ev.Name)
			if !ok {
				continue
			}
			if s.Reload(p) {
				s.log.Info("asset changed on disk", zap.String("path", p))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn("asset watcher error", zap.Error(err))
		}
	}
}

// assetPath converts a file system path reported by the watcher to an asset identifier.
func (s *server) assetPath(name string) (string, bool) {
	rel, err := filepath.Rel(s.root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return path.Clean(filepath.ToSlash(rel)), true
}

func (s *server) stopWatcher() {
	if s.watcher == nil {
		return
	}
	_ = s.watcher.Close()
	<-s.watchDone
}
