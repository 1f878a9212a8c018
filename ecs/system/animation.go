package system

import (
	"log"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// AnimationSystem applies clip switches in arrival order, then advances
// every playback and points its sprite at the current frame.
type AnimationSystem struct {
	lib *animation.Library
}

func NewAnimationSystem(lib *animation.Library) *AnimationSystem {
	return &AnimationSystem{lib: lib}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range ecs.Read[AnimateEvent](w) {
		anim, ok := ecs.Get(w, evt.Entity, component.AnimationComponent.Kind())
		if !ok {
			continue
		}
		if err := anim.Playback.Apply(a.lib, evt.Key); err != nil {
			panic("animation system: " + err.Error())
		}
		if Debug {
			log.Printf("animation: entity %s -> %s at frame %d", evt.Entity, evt.Key, anim.Playback.Index)
		}
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		anim.Playback.Advance(dt)
		sprite.ShowFrame(&anim.Playback)
	})
}
