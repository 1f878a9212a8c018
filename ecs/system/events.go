package system

import (
	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/movement"
)

// Debug enables per-tick logging.
var Debug bool

const (
	EventActions = "actions"
	EventMove    = "move"
	EventAnimate = "animate"
)

// ActionEvent carries the actions an entity's input produced this tick.
type ActionEvent struct {
	Entity  ecs.Entity
	Command controls.ActionCommand
}

type MoveEvent struct {
	Entity  ecs.Entity
	Command movement.MoveCommand
}

// AnimateEvent asks the animation system to switch an entity's clip.
type AnimateEvent struct {
	Entity ecs.Entity
	Key    animation.Key
}

// NewPipeline returns the per-tick systems in the order they must run.
func NewPipeline(input InputSource, lib *animation.Library, scripts ScriptSource, seed uint64) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewInputSystem(input),
		NewPlayerControllerSystem(),
		NewWanderSystem(scripts, seed),
		NewMovementSystem(seed+1),
		NewAnimationSystem(lib),
		NewCameraSystem(),
	)
}
