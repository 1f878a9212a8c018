package system

import (
	"math/rand/v2"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
)

// MovementSystem applies the tick's move commands. Entities with a body move
// through the physics space; the rest integrate their transform directly.
type MovementSystem struct {
	rng *rand.Rand
}

func NewMovementSystem(seed uint64) *MovementSystem {
	return &MovementSystem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	moving := make(map[ecs.Entity]common.Vec2)
	for _, evt := range ecs.Read[MoveEvent](w) {
		t, ok := ecs.Get(w, evt.Entity, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if body, ok := ecs.Get(w, evt.Entity, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			moving[evt.Entity] = evt.Command.Velocity(m.rng)
			continue
		}
		pos := movement.Integrate(common.Vec2{X: t.X, Y: t.Y}, evt.Command, dt, m.rng)
		t.X, t.Y = pos.X, pos.Y
	}

	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		v := moving[e]
		body.Body.SetVelocity(v.X, v.Y)
	})

	pw.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X = pos.X - body.OffsetX
		t.Y = pos.Y - body.OffsetY
	})
}
