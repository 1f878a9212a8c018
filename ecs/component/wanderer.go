package component

import (
	"time"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/movement"
)

// Wanderer moves on its own, re-deciding its heading every Decide interval.
type Wanderer struct {
	Script  string
	Rest    float64
	Speed   float64
	Decide  time.Duration
	Elapsed time.Duration

	Direction movement.Direction
	Heading   common.Vec2

	// Bounds, when non-zero, is the half-extent around Home past which the
	// wanderer heads back.
	HomeX   float64
	HomeY   float64
	BoundsW float64
	BoundsH float64
}

var WandererComponent = NewComponent[Wanderer]()
