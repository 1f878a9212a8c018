package animation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/milk9111/topdown/movement"
)

var (
	ErrMissingAsset   = errors.New("animation: missing asset")
	ErrDuplicateAsset = errors.New("animation: duplicate asset")
	ErrInvalidKey     = errors.New("animation: invalid key")
	ErrInvalidAsset   = errors.New("animation: invalid asset")
	ErrBuilderSpent   = errors.New("animation: builder already built")
)

// TextureID is an opaque texture handle; the renderer resolves it to an image.
type TextureID string

// Asset is one immutable clip: frame range, frame interval and sheet handles.
type Asset struct {
	Indices Indices
	Frame   time.Duration
	Layout  Layout
	Texture TextureID
}

func (a Asset) NewTimer() Timer {
	return NewTimer(a.Frame)
}

func (a Asset) validate() error {
	switch {
	case a.Texture == "":
		return fmt.Errorf("%w: empty texture", ErrInvalidAsset)
	case a.Frame <= 0:
		return fmt.Errorf("%w: frame interval %s", ErrInvalidAsset, a.Frame)
	case a.Indices.First < 0 || a.Indices.First > a.Indices.Last:
		return fmt.Errorf("%w: indices [%d, %d]", ErrInvalidAsset, a.Indices.First, a.Indices.Last)
	case a.Layout.Frames() > 0 && a.Indices.Last >= a.Layout.Frames():
		return fmt.Errorf("%w: last index %d outside %dx%d grid", ErrInvalidAsset, a.Indices.Last, a.Layout.Cols, a.Layout.Rows)
	}
	return nil
}

// Builder collects assets during the loading phase. Build hands back a
// read-only Library and retires the builder.
type Builder struct {
	assets map[Key]Asset
	spent  bool
}

func NewBuilder() *Builder {
	return &Builder{assets: make(map[Key]Asset)}
}

func (b *Builder) Register(key Key, asset Asset) error {
	if b == nil || b.spent {
		return ErrBuilderSpent
	}
	if key.Direction == movement.Random {
		return fmt.Errorf("%w: %s has no directional art", ErrInvalidKey, key)
	}
	if err := asset.validate(); err != nil {
		return fmt.Errorf("animation: register %s: %w", key, err)
	}
	if _, ok := b.assets[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAsset, key)
	}
	b.assets[key] = asset
	return nil
}

// Build checks that every required family covers the eight compass directions
// plus Zero and returns the finished library.
func (b *Builder) Build(required ...Family) (*Library, error) {
	if b == nil || b.spent {
		return nil, ErrBuilderSpent
	}

	var missing []string
	for _, f := range required {
		for _, d := range append([]movement.Direction{movement.Zero}, movement.Directions[:]...) {
			if _, ok := b.assets[Key{Family: f, Direction: d}]; !ok {
				missing = append(missing, Key{Family: f, Direction: d}.String())
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", ErrMissingAsset, missing)
	}

	b.spent = true
	lib := &Library{assets: b.assets}
	b.assets = nil
	return lib, nil
}

// Library is the populated, read-only clip table.
type Library struct {
	assets map[Key]Asset
}

func (l *Library) Lookup(key Key) (Asset, error) {
	if l == nil {
		return Asset{}, fmt.Errorf("%w: %s (nil library)", ErrMissingAsset, key)
	}
	a, ok := l.assets[key]
	if !ok {
		return Asset{}, fmt.Errorf("%w: %s", ErrMissingAsset, key)
	}
	return a, nil
}

// MustLookup panics on a missing key; the library is expected to be complete.
func (l *Library) MustLookup(key Key) Asset {
	a, err := l.Lookup(key)
	if err != nil {
		panic(err)
	}
	return a
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.assets)
}

// Keys returns every registered key, ordered by family then direction.
func (l *Library) Keys() []Key {
	if l == nil {
		return nil
	}
	keys := make([]Key, 0, len(l.assets))
	for k := range l.assets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Family != keys[j].Family {
			return keys[i].Family < keys[j].Family
		}
		return keys[i].Direction < keys[j].Direction
	})
	return keys
}

// Textures returns the distinct textures referenced by the library.
func (l *Library) Textures() []TextureID {
	if l == nil {
		return nil
	}
	seen := make(map[TextureID]struct{}, len(l.assets))
	var out []TextureID
	for _, k := range l.Keys() {
		t := l.assets[k].Texture
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
