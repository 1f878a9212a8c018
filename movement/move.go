package movement

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/topdown/common"
)

// MoveCommand asks the position integrator to move an entity this tick.
type MoveCommand struct {
	Direction    Direction
	Acceleration float64
	Speed        float64
	// Heading, when set, replaces the sampled vector for Random so one heading
	// can be held across ticks.
	Heading common.Vec2
}

// Velocity returns the command's velocity in pixels per second.
func (c MoveCommand) Velocity(rng *rand.Rand) common.Vec2 {
	var dir common.Vec2
	if c.Direction == Random && !c.Heading.IsZero() {
		dir = c.Heading
	} else {
		dir = c.Direction.Vector(rng)
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		return common.Vec2{}
	}
	accel := c.Acceleration
	if accel == 0 {
		accel = 1
	}
	return dir.Scale(c.Speed * accel)
}

// Integrate advances pos by the command's velocity over dt.
func Integrate(pos common.Vec2, c MoveCommand, dt time.Duration, rng *rand.Rand) common.Vec2 {
	return pos.Add(c.Velocity(rng).Scale(dt.Seconds()))
}
