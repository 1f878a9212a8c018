package system

import (
	"log"

	"github.com/milk9111/topdown/controls"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// InputSource reports the raw symbols held down this tick.
type InputSource interface {
	Held() []controls.Symbol
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	held := i.source.Held()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		actions := input.Mapper.Map(held)
		input.Last = actions
		if actions.Empty() {
			return
		}
		if Debug {
			log.Printf("input: entity %s actions %s", e, actions)
		}
		ecs.Emit(w, EventActions, ActionEvent{Entity: e, Command: controls.ActionCommand{Actions: actions}})
	})
}
