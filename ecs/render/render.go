package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// RenderSystem draws sprites by render layer, relative to the camera. The
// camera position is the world point shown at the screen center.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	v := r.view(w, screen)
	zoom := v.zoom

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		screenX, screenY := v.toScreen(t.X, t.Y)

		img := GetImage(s.Texture)
		if img == nil {
			if s.Width <= 0 || s.Height <= 0 {
				continue
			}
			x := screenX - s.OriginX*sx*zoom
			y := screenY - s.OriginY*sy*zoom
			rw, rh := float64(s.Width)*sx*zoom, float64(s.Height)*sy*zoom
			vector.FillRect(screen, float32(x), float32(y), float32(rw), float32(rh), s.Fill, false)
			// A darker strip marks the side the sprite faces.
			edge := rw / 4
			ex := x + rw - edge
			if s.FacingLeft {
				ex = x
			}
			vector.FillRect(screen, float32(ex), float32(y), float32(edge), float32(rh), shade(s.Fill), false)
			continue
		}

		if s.UseSource {
			if sub, ok := img.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		if s.FacingLeft {
			sx = -sx
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(screenX, screenY)

		screen.DrawImage(img, op)
	}
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

type view struct {
	camX, camY float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func (v view) toScreen(x, y float64) (float64, float64) {
	return (x-v.camX)*v.zoom + v.halfW, (y-v.camY)*v.zoom + v.halfH
}

// view resolves the camera looking at the world. Without a camera the world
// origin sits at the top-left corner.
func (r *RenderSystem) view(w *ecs.World, screen *ebiten.Image) view {
	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	v := view{
		camX:  float64(sw) / 2,
		camY:  float64(sh) / 2,
		zoom:  1,
		halfW: float64(sw) / 2,
		halfH: float64(sh) / 2,
	}
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.camX = camTransform.X
		v.camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		v.zoom = camComp.Zoom
	}
	return v
}
