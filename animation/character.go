package animation

import (
	"fmt"
	"image"
	"math"
	"path"
	"sort"
	"time"

	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

// Images reports the pixel bounds of a loaded sheet.
type Images interface {
	Bounds(path string) (image.Rectangle, bool)
}

// SheetPath is the sprite sheet of one family facing d.
func SheetPath(folder string, fam prefabs.FamilySpec, d movement.Direction) string {
	if d == movement.Zero {
		d = movement.Down
	}
	return path.Join(folder, fam.Dir, fam.Prefix+"_"+d.String()+".png")
}

// CharacterPaths lists every sheet the character needs, sorted.
func CharacterPaths(spec prefabs.CharacterSpec) []string {
	var out []string
	for _, fam := range spec.Families {
		for _, d := range movement.Directions {
			out = append(out, SheetPath(spec.Folder, fam, d))
		}
	}
	sort.Strings(out)
	return out
}

// LoadCharacter registers every family and direction of spec. Zero shares the
// Down sheet. Every family in Families must be present since the state machine
// can ask for any of them.
func LoadCharacter(spec prefabs.CharacterSpec, images Images) (*Library, error) {
	b := NewBuilder()

	names := make([]string, 0, len(spec.Families))
	for name := range spec.Families {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		famSpec := spec.Families[name]
		fam, err := ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("animation: character %s: %w", spec.Name, err)
		}

		seconds := famSpec.FrameSeconds
		if seconds <= 0 {
			seconds = spec.FrameSeconds
		}
		frame := time.Duration(math.Round(seconds * float64(time.Second)))

		for _, d := range append([]movement.Direction{movement.Zero}, movement.Directions[:]...) {
			p := SheetPath(spec.Folder, famSpec, d)
			bounds, ok := images.Bounds(p)
			if !ok {
				return nil, fmt.Errorf("%w: %s/%s: sheet %s not loaded", ErrMissingAsset, fam, d, p)
			}
			asset := Asset{
				Indices: Indices{First: famSpec.First, Last: famSpec.Last},
				Frame:   frame,
				Layout:  GridLayout(bounds.Dx(), famSpec.Cols, famSpec.Rows),
				Texture: TextureID(p),
			}
			if err := b.Register(Key{Family: fam, Direction: d}, asset); err != nil {
				return nil, err
			}
		}
	}

	lib, err := b.Build(Families[:]...)
	if err != nil {
		return nil, fmt.Errorf("animation: character %s: %w", spec.Name, err)
	}
	return lib, nil
}
