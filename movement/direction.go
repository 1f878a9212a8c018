package movement

import (
	"math/rand/v2"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/controls"
)

// Direction is a discretized movement or facing direction.
type Direction uint8

const (
	Zero Direction = iota
	Random
	Up
	Down
	Right
	Left
	UpRight
	UpLeft
	DownRight
	DownLeft
)

// Directions lists the eight compass directions.
var Directions = [8]Direction{Up, Down, Left, Right, UpRight, UpLeft, DownRight, DownLeft}

var directionNames = map[Direction]string{
	Zero:      "zero",
	Random:    "random",
	Up:        "up",
	Down:      "down",
	Right:     "right",
	Left:      "left",
	UpRight:   "up_right",
	UpLeft:    "up_left",
	DownRight: "down_right",
	DownLeft:  "down_left",
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return "unknown"
}

// ParseDirection resolves a direction name such as "up_left". Unknown names
// resolve to Zero.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return d, true
		}
	}
	return Zero, false
}

// IsNegX reports whether the direction points toward negative x.
func (d Direction) IsNegX() bool {
	return d == Left || d == UpLeft || d == DownLeft
}

// FacesLeft reports whether motion along d points toward negative x. Random
// uses the held heading.
func FacesLeft(d Direction, heading common.Vec2) bool {
	if d == Random {
		return heading.X < 0
	}
	return d.IsNegX()
}

// FromActions reduces a set of movement actions to one direction. The checks
// run in a fixed order and the first match wins, so a diagonal pair is never
// reduced to a cardinal even when a contradictory third key is held.
func FromActions(actions controls.ActionSet) Direction {
	up := actions.Has(controls.MoveUp)
	down := actions.Has(controls.MoveDown)
	left := actions.Has(controls.MoveLeft)
	right := actions.Has(controls.MoveRight)

	switch {
	case up && right:
		return UpRight
	case down && left:
		return DownLeft
	case down && right:
		return DownRight
	case up && left:
		return UpLeft
	case up:
		return Up
	case down:
		return Down
	case left:
		return Left
	case right:
		return Right
	default:
		return Zero
	}
}

// Vector returns the direction's vector in screen space. Diagonals are the
// unnormalized (±1, ±1); callers normalize before scaling by speed. Random
// draws a fresh unit vector from rng.
func (d Direction) Vector(rng *rand.Rand) common.Vec2 {
	switch d {
	case Up:
		return common.Vec2{X: 0, Y: -1}
	case Down:
		return common.Vec2{X: 0, Y: 1}
	case Right:
		return common.Vec2{X: 1, Y: 0}
	case Left:
		return common.Vec2{X: -1, Y: 0}
	case UpRight:
		return common.Vec2{X: 1, Y: -1}
	case UpLeft:
		return common.Vec2{X: -1, Y: -1}
	case DownRight:
		return common.Vec2{X: 1, Y: 1}
	case DownLeft:
		return common.Vec2{X: -1, Y: 1}
	case Random:
		return RandomVector(rng)
	default:
		return common.Vec2{}
	}
}

const maxRandomDraws = 8

// RandomVector draws x and y uniformly from [-1, 1) and normalizes the result.
// A zero-length draw is re-sampled; if that keeps happening the unit x vector
// is returned so the result is never zero or NaN.
func RandomVector(rng *rand.Rand) common.Vec2 {
	for i := 0; i < maxRandomDraws; i++ {
		var v common.Vec2
		if rng != nil {
			v = common.Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		} else {
			v = common.Vec2{X: rand.Float64()*2 - 1, Y: rand.Float64()*2 - 1}
		}
		if n := v.Normalize(); !n.IsZero() {
			return n
		}
	}
	return common.Vec2{X: 1}
}
