// Package logger holds the process-wide zap logger shared by engine components.
// Components take a *zap.Logger through their builder options and fall back to Log.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex

	// Log is the shared logger. It discards everything until Set or Init is called.
	Log = zap.NewNop()
)

// New builds a zap logger.
//
// Parameters:
//   - development: true for the human-readable console encoder, false for JSON
//   - level: minimum level name ("debug", "info", "warn", "error"); empty means info
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the level name is unknown or the logger cannot be built
func New(development bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	return cfg.Build()
}

// Init builds a logger with New and installs it as Log.
//
// Parameters:
//   - development: true for the console encoder
//   - level: minimum level name
//
// Returns:
//   - error: error if the logger cannot be built
func Init(development bool, level string) error {
	l, err := New(development, level)
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set installs l as the shared logger. A nil logger restores the no-op default.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	Log = l
	mu.Unlock()
}

// Get returns the shared logger.
func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return Log
}

// Or returns l when it is non-nil and the shared logger otherwise.
func Or(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return Get()
}
