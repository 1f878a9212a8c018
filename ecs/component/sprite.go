package component

import (
	"image"
	"image/color"

	"github.com/milk9111/topdown/animation"
)

// Sprite is what the renderer draws for an entity. Texture names an image in
// the render registry; an empty texture draws a Width x Height rectangle
// filled with Fill.
type Sprite struct {
	Texture    animation.TextureID
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool

	// CenterOrigin recenters the origin on the current frame every update.
	CenterOrigin bool

	Width  int
	Height int
	Fill   color.RGBA
}

var SpriteComponent = NewComponent[Sprite]()

// ShowFrame points the sprite at the playback's current atlas frame.
func (s *Sprite) ShowFrame(p *animation.Playback) {
	s.Texture = p.Texture
	s.Source = p.Layout.Rect(p.Index)
	s.UseSource = true
	if s.CenterOrigin {
		s.OriginX = float64(p.Layout.FrameW) / 2
		s.OriginY = float64(p.Layout.FrameH) / 2
	}
}
