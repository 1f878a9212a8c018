package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// CameraSystem eases the camera toward its target by smoothness * dt each
// tick.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			panic("camera system: no camera entity")
		}
		cs.camEntity = camEntity
	}

	camComp, _ := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !w.IsAlive(cs.targetEntity) {
		target, ok := findEntityByNameOrTag(w, camComp.TargetName)
		if !ok {
			panic("camera system: no target " + camComp.TargetName)
		}
		cs.targetEntity = target
	}

	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		panic("camera system: camera has no transform")
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		panic("camera system: target has no transform")
	}

	pos := common.LerpVec(
		common.Vec2{X: camTransform.X, Y: camTransform.Y},
		common.Vec2{X: targetTransform.X, Y: targetTransform.Y},
		camComp.Smoothness*w.Delta().Seconds(),
	)
	camTransform.X, camTransform.Y = pos.X, pos.Y
}

func findEntityByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" || name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e, true
		}
	}
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !ok && n.Value == name {
			found, ok = e, true
		}
	})
	return found, ok
}
