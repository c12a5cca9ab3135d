package asset

import (
	"io/fs"

	"go.uber.org/zap"
)

// ServerBuilderOption is a functional option for configuring a Server via NewServer.
type ServerBuilderOption func(*server)

// WithFS is an option builder that sets the file system assets are read from.
// It takes precedence over WithRoot.
//
// Parameters:
//   - fsys: the file system to read assets from
//
// Returns:
//   - ServerBuilderOption: a function that applies the file system option to a server
func WithFS(fsys fs.FS) ServerBuilderOption {
	return func(s *server) {
		s.fsys = fsys
	}
}

// WithRoot is an option builder that sets the directory assets are read from.
//
// Parameters:
//   - root: the asset root directory
//
// Returns:
//   - ServerBuilderOption: a function that applies the root option to a server
func WithRoot(root string) ServerBuilderOption {
	return func(s *server) {
		if root != "" {
			s.root = root
		}
	}
}

// WithWorkers is an option builder that sets the number of decode workers.
//
// Parameters:
//   - n: the worker count (values below 1 are ignored)
//
// Returns:
//   - ServerBuilderOption: a function that applies the worker option to a server
func WithWorkers(n int) ServerBuilderOption {
	return func(s *server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger is an option builder that sets the logger used by the Server.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ServerBuilderOption: a function that applies the logger option to a server
func WithLogger(l *zap.Logger) ServerBuilderOption {
	return func(s *server) {
		s.log = l
	}
}

// WithBackend is an option builder that registers a decoder for a file extension,
// replacing any built-in decoder for it.
//
// Parameters:
//   - ext: the file extension including the leading dot (e.g. ".ktx2")
//   - decode: the header decoder
//
// Returns:
//   - ServerBuilderOption: a function that applies the backend option to a server
func WithBackend(ext string, decode DecodeFunc) ServerBuilderOption {
	return func(s *server) {
		if decode != nil {
			s.backends[extension("x"+ext)] = decode
		}
	}
}

// WithWatch is an option builder that reloads resident assets when their files change on disk.
// Watching only applies when the server reads from its root directory, not from WithFS.
//
// Parameters:
//   - enabled: whether to watch the asset root
//
// Returns:
//   - ServerBuilderOption: a function that applies the watch option to a server
func WithWatch(enabled bool) ServerBuilderOption {
	return func(s *server) {
		s.watch = enabled
	}
}
