package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its kinematic Chipmunk body. The body is
// centered on the transform plus the offset.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
