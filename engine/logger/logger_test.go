package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(true, "loud")
	assert.Error(t, err)
}

func TestNewAppliesLevel(t *testing.T) {
	l, err := New(false, "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestSetAndOr(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	custom := zap.NewExample()
	Set(custom)
	assert.Same(t, custom, Get())
	assert.Same(t, custom, Or(nil))

	other := zap.NewNop()
	assert.Same(t, other, Or(other))

	Set(nil)
	assert.NotNil(t, Get())
}
