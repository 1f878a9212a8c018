package system

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
)

// ScriptSource loads a decision script by name.
type ScriptSource func(name string) ([]byte, error)

const decisionHome = "home"

// WanderSystem drives non-player motion. Every decision interval a script
// picks "random", "zero" or "home"; a random heading is sampled once and held
// until the next decision.
type WanderSystem struct {
	scripts  ScriptSource
	compiled map[string]*tengo.Compiled
	rng      *rand.Rand
}

func NewWanderSystem(scripts ScriptSource, seed uint64) *WanderSystem {
	return &WanderSystem{
		scripts:  scripts,
		compiled: make(map[string]*tengo.Compiled),
		rng:      rand.New(rand.NewPCG(seed, seed^0x6a09e667f3bcc909)),
	}
}

func (ws *WanderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.WandererComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, wd *component.Wanderer, t *component.Transform) {
		wd.Elapsed += dt
		if wd.Elapsed >= wd.Decide {
			wd.Elapsed = 0
			ws.decide(e, wd, t)
			face(w, e, wd)
		}
		if wd.Direction == movement.Zero {
			return
		}
		ecs.Emit(w, EventMove, MoveEvent{Entity: e, Command: movement.MoveCommand{
			Direction:    wd.Direction,
			Acceleration: 1,
			Speed:        wd.Speed,
			Heading:      wd.Heading,
		}})
	})
}

func (ws *WanderSystem) decide(e ecs.Entity, wd *component.Wanderer, t *component.Transform) {
	decision := "random"
	if wd.Script != "" {
		var err error
		decision, err = ws.run(wd, t)
		if err != nil {
			panic("wander system: " + err.Error())
		}
	}

	switch decision {
	case decisionHome:
		home := common.Vec2{X: wd.HomeX, Y: wd.HomeY}
		wd.Direction = movement.Random
		wd.Heading = home.Sub(common.Vec2{X: t.X, Y: t.Y}).Normalize()
		if wd.Heading.IsZero() {
			wd.Direction = movement.Zero
		}
	default:
		d, ok := movement.ParseDirection(decision)
		if !ok {
			panic(fmt.Sprintf("wander system: script %s returned %q", wd.Script, decision))
		}
		wd.Direction = d
		wd.Heading = common.Vec2{}
		if d == movement.Random {
			wd.Heading = movement.RandomVector(ws.rng)
		}
	}

	if Debug {
		log.Printf("wander: entity %s -> %s %v", e, decision, wd.Heading)
	}
}

// face turns the sprite toward the current motion. Resting keeps the last
// facing.
func face(w *ecs.World, e ecs.Entity, wd *component.Wanderer) {
	if wd.Direction == movement.Zero {
		return
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.FacingLeft = movement.FacesLeft(wd.Direction, wd.Heading)
	}
}

func (ws *WanderSystem) run(wd *component.Wanderer, t *component.Transform) (string, error) {
	compiled, err := ws.compile(wd.Script)
	if err != nil {
		return "", err
	}

	vars := map[string]any{
		"roll":        ws.rng.Float64(),
		"rest_chance": wd.Rest,
		"distance":    outside(wd, t),
	}
	for name, v := range vars {
		if err := compiled.Set(name, v); err != nil {
			return "", fmt.Errorf("script %s: set %s: %w", wd.Script, name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return "", fmt.Errorf("script %s: %w", wd.Script, err)
	}
	out := compiled.Get("direction")
	if out == nil || out.IsUndefined() {
		return "", fmt.Errorf("script %s: no direction", wd.Script)
	}
	return out.String(), nil
}

func (ws *WanderSystem) compile(name string) (*tengo.Compiled, error) {
	if c, ok := ws.compiled[name]; ok {
		return c, nil
	}
	if ws.scripts == nil {
		return nil, fmt.Errorf("script %s: no script source", name)
	}
	src, err := ws.scripts(name)
	if err != nil {
		return nil, fmt.Errorf("script %s: load: %w", name, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range []string{"roll", "rest_chance", "distance"} {
		if err := script.Add(v, 0.0); err != nil {
			return nil, fmt.Errorf("script %s: declare %s: %w", name, v, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}
	ws.compiled[name] = compiled
	return compiled, nil
}

// outside is how far t lies past the wanderer's bounds, 0 when inside or
// unbounded.
func outside(wd *component.Wanderer, t *component.Transform) float64 {
	d := 0.0
	if wd.BoundsW > 0 {
		d = math.Max(d, math.Abs(t.X-wd.HomeX)-wd.BoundsW)
	}
	if wd.BoundsH > 0 {
		d = math.Max(d, math.Abs(t.Y-wd.HomeY)-wd.BoundsH)
	}
	return d
}
