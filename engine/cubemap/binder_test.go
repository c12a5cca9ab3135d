package cubemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinder_BindAndRelease(t *testing.T) {
	assets := newFakeAssets()
	skybox := &fakeSlot{name: "skybox"}
	diffuse := &fakeSlot{name: "diffuse"}

	b := NewBinder(skybox, nil, diffuse)
	require.Equal(t, 2, b.Len(), "nil slots are ignored")

	first := assets.Load("a.png")
	assert.Equal(t, 2, b.Bind(first))
	assert.True(t, skybox.Texture().Same(first))
	assert.True(t, diffuse.Texture().Same(first))
	assert.Equal(t, 3, assets.refs(first), "caller plus one per slot")

	second := assets.Load("b.ktx2")
	b.Bind(second)
	assert.Equal(t, 1, assets.refs(first), "old slot references are released")
	assert.Equal(t, 3, assets.refs(second))
	assert.True(t, skybox.Texture().Same(second))

	b.Bind(second)
	assert.Equal(t, 3, assets.refs(second), "rebinding the same handle keeps counts stable")

	b.Unbind()
	assert.Equal(t, 1, assets.refs(second))
	assert.False(t, skybox.Texture().IsValid())
	assert.False(t, diffuse.Texture().IsValid())
}

func TestBinder_Register(t *testing.T) {
	b := NewBinder()
	assert.Equal(t, 0, b.Bind(newFakeAssets().Load("a.png")))

	slot := &fakeSlot{name: "late"}
	b.Register(slot)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "late", b.Slots()[0].SlotName())
}
