package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Count      int            `yaml:"count"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RunMultiplier float64 `yaml:"run_multiplier"`
}

type InputComponentSpec struct {
	Bindings map[string]string `yaml:"bindings"`
}

type ControllerComponentSpec struct {
	Direction string `yaml:"direction"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image        string     `yaml:"image"`
	OriginX      float64    `yaml:"origin_x"`
	OriginY      float64    `yaml:"origin_y"`
	CenterOrigin bool       `yaml:"center_origin"`
	Width        int        `yaml:"width"`
	Height       int        `yaml:"height"`
	Color        *YAMLColor `yaml:"color"`
}

// AnimationComponentSpec picks the clip an entity starts on. The clips come
// from the library the entity is built with.
type AnimationComponentSpec struct {
	Family    string `yaml:"family"`
	Direction string `yaml:"direction"`
}

type PhysicsBodyComponentSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type WandererComponentSpec struct {
	Speed         float64 `yaml:"speed"`
	DecideSeconds float64 `yaml:"decide_seconds"`
	Script        string  `yaml:"script"`
	RestChance    float64 `yaml:"rest_chance"`
	BoundsW       float64 `yaml:"bounds_w"`
	BoundsH       float64 `yaml:"bounds_h"`
}
