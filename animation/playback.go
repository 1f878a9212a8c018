package animation

import (
	"fmt"
	"time"
)

// Playback is the per-entity animation runtime: the clip being shown, its
// timer, and the displayed atlas index.
type Playback struct {
	Key     Key
	Timer   Timer
	Index   int
	Indices Indices
	Texture TextureID
	Layout  Layout
}

// NewPlayback starts playback of key at its first frame.
func NewPlayback(lib *Library, key Key) (Playback, error) {
	asset, err := lib.Lookup(key)
	if err != nil {
		return Playback{}, err
	}
	return Playback{
		Key:     key,
		Timer:   asset.NewTimer(),
		Index:   asset.Indices.First,
		Indices: asset.Indices,
		Texture: asset.Texture,
		Layout:  asset.Layout,
	}, nil
}

// Advance ticks the timer and steps the index once when an interval elapsed.
// It reports whether the displayed frame changed.
func (p *Playback) Advance(dt time.Duration) bool {
	if p == nil {
		return false
	}
	if p.Timer.Tick(dt) == 0 {
		return false
	}
	prev := p.Index
	p.Index = p.Indices.Next(p.Index)
	return p.Index != prev
}

// Apply switches playback to key. The previous index is clamped into the new
// range instead of restarting, and the whole record is overwritten. The timer
// keeps running and takes the new clip's interval.
func (p *Playback) Apply(lib *Library, key Key) error {
	if p == nil {
		return fmt.Errorf("animation: apply %s: nil playback", key)
	}
	asset, err := lib.Lookup(key)
	if err != nil {
		return fmt.Errorf("animation: apply %s: %w", key, err)
	}
	p.Key = key
	p.Index = asset.Indices.Clamp(p.Index)
	p.Indices = asset.Indices
	p.Texture = asset.Texture
	p.Layout = asset.Layout
	p.Timer.SetDuration(asset.Frame)
	return nil
}
