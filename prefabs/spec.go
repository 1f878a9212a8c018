package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec describes a directional character animation set on disk.
// Sheets live at <folder>/<family.dir>/<family.prefix>_<direction>.png.
type CharacterSpec struct {
	Name         string                `yaml:"name"`
	Folder       string                `yaml:"folder"`
	FrameSeconds float64               `yaml:"frame_seconds"`
	Families     map[string]FamilySpec `yaml:"families"`
}

type FamilySpec struct {
	Dir          string  `yaml:"dir"`
	Prefix       string  `yaml:"prefix"`
	Cols         int     `yaml:"cols"`
	Rows         int     `yaml:"rows"`
	First        int     `yaml:"first"`
	Last         int     `yaml:"last"`
	FrameSeconds float64 `yaml:"frame_seconds"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Folder == "" {
		return nil, fmt.Errorf("prefabs: %s: folder is required", filename)
	}
	if len(spec.Families) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no families", filename)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// RGBA8 returns the parsed color premultiplied, or fallback when none was set.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
