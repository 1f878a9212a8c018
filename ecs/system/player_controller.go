package system

import (
	"log"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
)

// PlayerControllerSystem turns the tick's actions into state transitions,
// move commands and clip switches for the player.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	commands := ecs.Read[ActionEvent](w)

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.ControllerComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, player *component.Player, ctrl *component.Controller, anim *component.Animation) {
		// No command this tick means nothing is held.
		var actions controls.ActionSet
		for _, cmd := range commands {
			if cmd.Entity == e {
				actions = cmd.Command.Actions
			}
		}

		ctrl.State.Step(actions)
		dir := movement.FromActions(actions)
		ctrl.Direction = dir

		if actions.HasMovement() {
			accel := 1.0
			if actions.Has(controls.Run) {
				accel = player.RunMultiplier
			}
			move := movement.MoveCommand{
				Direction:    dir,
				Acceleration: accel,
				Speed:        player.MoveSpeed,
			}
			if Debug {
				log.Printf("player controller: entity %s move %s x%.1f", e, dir, accel)
			}
			ecs.Emit(w, EventMove, MoveEvent{Entity: e, Command: move})
		}

		key := animation.Key{Family: ctrl.State.Family(), Direction: dir}
		if key != anim.Playback.Key {
			ecs.Emit(w, EventAnimate, AnimateEvent{Entity: e, Key: key})
		}
	})
}
