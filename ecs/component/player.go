package component

import (
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/statemachine"
)

// Player holds movement tuning for the controllable character.
type Player struct {
	MoveSpeed     float64
	RunMultiplier float64
}

var PlayerComponent = NewComponent[Player]()

// Controller is the player's state machine plus the direction it last faced.
type Controller struct {
	State     statemachine.Character
	Direction movement.Direction
}

var ControllerComponent = NewComponent[Controller]()
