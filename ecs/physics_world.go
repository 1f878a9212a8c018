package ecs

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	CollisionTypePlayer cp.CollisionType = iota + 1
	CollisionTypeWanderer
)

// PhysicsWorld owns the Chipmunk space. The view is top-down, so there is no
// gravity and every character body is kinematic: velocity in, position out.
type PhysicsWorld struct {
	space         *cp.Space
	shapeToEntity map[*cp.Shape]Entity
}

func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBody creates a kinematic box body for e centered on t plus the offset.
func (pw *PhysicsWorld) AddBody(e Entity, t *component.Transform, body *component.PhysicsBody, collisionType cp.CollisionType) {
	if pw == nil || t == nil || body == nil || body.Body != nil {
		return
	}
	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(cp.Vector{X: t.X + body.OffsetX, Y: t.Y + body.OffsetY})

	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	shape.SetCollisionType(collisionType)

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	body.Body = cpBody
	body.Shape = shape
}

func (pw *PhysicsWorld) RemoveBody(body *component.PhysicsBody) {
	if pw == nil || body == nil || body.Body == nil {
		return
	}
	if body.Shape != nil {
		delete(pw.shapeToEntity, body.Shape)
		pw.space.RemoveShape(body.Shape)
	}
	pw.space.RemoveBody(body.Body)
	body.Body = nil
	body.Shape = nil
}

func (pw *PhysicsWorld) EntityForShape(shape *cp.Shape) (Entity, bool) {
	if pw == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[shape]
	return e, ok
}

// Step advances the simulation by dt.
func (pw *PhysicsWorld) Step(dt time.Duration) {
	if pw == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt.Seconds())
}
