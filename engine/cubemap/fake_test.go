package cubemap

import (
	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeAsset struct {
	path   string
	status asset.LoadStatus
	meta   texture.Metadata
	refs   int
}

// fakeAssets is an in-memory asset server whose loads finish only when the test says so.
type fakeAssets struct {
	nextID uint64
	assets map[uint64]*fakeAsset
	loads  []string
}

var _ Assets = &fakeAssets{}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{assets: make(map[uint64]*fakeAsset)}
}

func (f *fakeAssets) Load(path string) asset.Handle {
	f.nextID++
	f.assets[f.nextID] = &fakeAsset{path: path, status: asset.StatusPending, refs: 1}
	f.loads = append(f.loads, path)
	return asset.NewHandle(f.nextID, path, f)
}

func (f *fakeAssets) Status(h asset.Handle) asset.LoadStatus {
	a, ok := f.assets[h.ID()]
	if !ok {
		return asset.StatusFailed
	}
	return a.status
}

func (f *fakeAssets) GetMutable(h asset.Handle) (*texture.Metadata, bool) {
	a, ok := f.assets[h.ID()]
	if !ok || a.status != asset.StatusLoaded {
		return nil, false
	}
	return &a.meta, true
}

func (f *fakeAssets) Retain(id uint64) {
	if a, ok := f.assets[id]; ok {
		a.refs++
	}
}

func (f *fakeAssets) Release(id uint64) {
	if a, ok := f.assets[id]; ok {
		a.refs--
	}
}

// complete finishes the most recent load of h with the given metadata.
func (f *fakeAssets) complete(h asset.Handle, meta texture.Metadata) {
	a := f.assets[h.ID()]
	a.status = asset.StatusLoaded
	a.meta = meta
}

// reload puts a loaded asset back into the pending state under the same ID.
func (f *fakeAssets) reload(h asset.Handle) {
	f.assets[h.ID()].status = asset.StatusPending
}

func (f *fakeAssets) fail(h asset.Handle) {
	f.assets[h.ID()].status = asset.StatusFailed
}

func (f *fakeAssets) refs(h asset.Handle) int {
	return f.assets[h.ID()].refs
}

func (f *fakeAssets) meta(h asset.Handle) texture.Metadata {
	return f.assets[h.ID()].meta
}

// stackedMeta is a flat image of six square faces stacked vertically.
func stackedMeta(face uint32) texture.Metadata {
	return texture.NewFlatMetadata(face, face*6, wgpu.TextureFormatRGBA8UnormSrgb)
}

// cubeMeta is a self-describing cubemap container.
func cubeMeta(face uint32) texture.Metadata {
	return texture.Metadata{
		Width:           face,
		Height:          face,
		ArrayLayerCount: 6,
		MipLevelCount:   1,
		ViewDimension:   wgpu.TextureViewDimensionCube,
		Format:          wgpu.TextureFormatBC7RGBAUnorm,
	}
}

type fakeSlot struct {
	name string
	tex  asset.Handle
	sets int
}

func (s *fakeSlot) SlotName() string { return s.name }

func (s *fakeSlot) Texture() asset.Handle { return s.tex }

func (s *fakeSlot) SetTexture(h asset.Handle) {
	s.tex = h
	s.sets++
}
