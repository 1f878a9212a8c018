package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

func NewPlayer(w *ecs.World, res Resources) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml", res)
}

// ReloadPlayerTuning re-reads the player prefab and applies its speed and run
// multiplier to every entity carrying a Player component. It returns the
// number of entities updated.
func ReloadPlayerTuning(w *ecs.World) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec("player.yaml")
	if err != nil {
		return 0, fmt.Errorf("player: reload: %w", err)
	}
	tuning, err := prefabs.DecodeComponentSpec[playerSpec](spec.Components["player"])
	if err != nil {
		return 0, fmt.Errorf("player: reload: decode: %w", err)
	}

	updated := 0
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		if tuning.MoveSpeed > 0 {
			p.MoveSpeed = tuning.MoveSpeed
		}
		if tuning.RunMultiplier > 0 {
			p.RunMultiplier = tuning.RunMultiplier
		}
		updated++
	})
	return updated, nil
}
