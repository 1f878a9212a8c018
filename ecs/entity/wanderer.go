package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// NewWanderers spawns count wanderers from wanderer.yaml scattered inside
// their bounds. A negative count uses the prefab's own count.
func NewWanderers(w *ecs.World, count int, rng *rand.Rand) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec("wanderer.yaml")
	if err != nil {
		return nil, fmt.Errorf("wanderer: load spec: %w", err)
	}
	if count < 0 {
		count = spec.Count
	}

	out := make([]ecs.Entity, 0, count)
	for i := 0; i < count; i++ {
		e, err := buildFromSpec(w, "wanderer.yaml", spec, Resources{})
		if err != nil {
			return out, err
		}
		if wd, ok := ecs.Get(w, e, component.WandererComponent.Kind()); ok && rng != nil {
			x := wd.HomeX + (rng.Float64()*2-1)*wd.BoundsW
			y := wd.HomeY + (rng.Float64()*2-1)*wd.BoundsH
			if err := SetEntityTransform(w, e, x, y); err != nil {
				return out, fmt.Errorf("wanderer: place: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, nil
}
