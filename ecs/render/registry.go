package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/animation"
)

var images = map[animation.TextureID]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key animation.TextureID, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key animation.TextureID) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}
