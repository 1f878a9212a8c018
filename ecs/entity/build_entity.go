package entity

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/controls"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// Resources are the loaded runtime assets builders may need.
type Resources struct {
	Library *animation.Library
}

type buildContext struct {
	PrefabPath string
	Name       string
	Resources  Resources
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"controller":   addController,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"camera":       addCamera,
	"animation":    addAnimation,
	"physics_body": addPhysicsBody,
	"wanderer":     addWanderer,
}

// animation writes into the sprite; physics_body reads the transform and
// player tag; wanderer reads the transform for its home.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"controller",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"animation",
	"physics_body",
	"wanderer",
}

func BuildEntity(w *ecs.World, prefabPath string, res Resources) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, res)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, res Resources) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Name: spec.Name, Resources: res}

	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
		}
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			destroy(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		destroy(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// destroy removes a half-built entity, including any physics body it got.
func destroy(w *ecs.World, e ecs.Entity) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		w.PhysicsWorld().RemoveBody(body)
	}
	ecs.DestroyEntity(w, e)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: x + body.OffsetX, Y: y + body.OffsetY})
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed <= 0 {
		spec.MoveSpeed = 200
	}
	if spec.RunMultiplier <= 0 {
		spec.RunMultiplier = 2
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:     spec.MoveSpeed,
		RunMultiplier: spec.RunMultiplier,
	})
}

type inputSpec = prefabs.InputComponentSpec

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[inputSpec](raw)
	if err != nil {
		return fmt.Errorf("decode input spec: %w", err)
	}
	var binding controls.Binding
	if len(spec.Bindings) > 0 {
		binding, err = controls.ParseBinding(spec.Bindings)
		if err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Mapper: controls.NewMapper(binding)})
}

type controllerSpec = prefabs.ControllerComponentSpec

func addController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[controllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	dir, err := parseDirection(spec.Direction)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ControllerComponent.Kind(), &component.Controller{Direction: dir})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{
		Texture:      animation.TextureID(spec.Image),
		OriginX:      spec.OriginX,
		OriginY:      spec.OriginY,
		CenterOrigin: spec.CenterOrigin,
		Width:        spec.Width,
		Height:       spec.Height,
		Fill:         spec.Color.RGBA8(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
	}
	if sprite.CenterOrigin && sprite.OriginX == 0 && sprite.OriginY == 0 {
		sprite.OriginX = float64(sprite.Width) / 2
		sprite.OriginY = float64(sprite.Height) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 2
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if ctx.Resources.Library == nil {
		return fmt.Errorf("animation %s/%s: no library loaded", spec.Family, spec.Direction)
	}

	key := animation.Key{Family: animation.Idle, Direction: movement.Zero}
	if spec.Family != "" {
		if key.Family, err = animation.ParseFamily(spec.Family); err != nil {
			return err
		}
	}
	if key.Direction, err = parseDirection(spec.Direction); err != nil {
		return err
	}

	playback, err := animation.NewPlayback(ctx.Resources.Library, key)
	if err != nil {
		return err
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.ShowFrame(&playback)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Playback: playback})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive size, got %vx%v", spec.Width, spec.Height)
	}

	body := &component.PhysicsBody{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		collisionType := ecs.CollisionTypeWanderer
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			collisionType = ecs.CollisionTypePlayer
		}
		w.PhysicsWorld().AddBody(e, t, body, collisionType)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
}

type wandererSpec = prefabs.WandererComponentSpec

func addWanderer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[wandererSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wanderer spec: %w", err)
	}
	if spec.Speed <= 0 {
		return fmt.Errorf("wanderer speed must be positive, got %v", spec.Speed)
	}
	if spec.DecideSeconds <= 0 {
		spec.DecideSeconds = 1
	}

	wanderer := &component.Wanderer{
		Script:  spec.Script,
		Rest:    spec.RestChance,
		Speed:   spec.Speed,
		Decide:  time.Duration(spec.DecideSeconds * float64(time.Second)),
		BoundsW: spec.BoundsW,
		BoundsH: spec.BoundsH,
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		wanderer.HomeX = t.X
		wanderer.HomeY = t.Y
	}
	// Decide on the first tick.
	wanderer.Elapsed = wanderer.Decide
	return ecs.Add(w, e, component.WandererComponent.Kind(), wanderer)
}

func parseDirection(name string) (movement.Direction, error) {
	if name == "" {
		return movement.Zero, nil
	}
	d, ok := movement.ParseDirection(name)
	if !ok {
		return 0, fmt.Errorf("unknown direction %q", name)
	}
	return d, nil
}
