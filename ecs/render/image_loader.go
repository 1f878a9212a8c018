package render

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/assets"
)

// UploadFolder turns every decoded image of a loaded folder into a GPU
// texture keyed by its asset path.
func UploadFolder(folder *assets.Folder) error {
	if !folder.Loaded() {
		return fmt.Errorf("render: upload %s: %w", folder.Dir(), assets.ErrNotLoaded)
	}
	for _, p := range folder.Paths() {
		img, err := folder.Image(p)
		if err != nil {
			return fmt.Errorf("render: upload %s: %w", p, err)
		}
		RegisterImage(animation.TextureID(p), ebiten.NewImageFromImage(img))
	}
	log.Printf("render: uploaded %d textures from %s", len(folder.Paths()), folder.Dir())
	return nil
}

// MissingTextures lists the library textures with no uploaded image.
func MissingTextures(lib *animation.Library) []animation.TextureID {
	var out []animation.TextureID
	for _, id := range lib.Textures() {
		if GetImage(id) == nil {
			out = append(out, id)
		}
	}
	return out
}
