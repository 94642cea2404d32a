package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
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

// SceneSpec lists what a fresh scene is built from.
type SceneSpec struct {
	Name     string     `yaml:"name"`
	Avatar   string     `yaml:"avatar"`
	Camera   string     `yaml:"camera"`
	Zones    []ZoneSpec `yaml:"zones"`
	Settings string     `yaml:"settings"`
	Debug    DebugSpec  `yaml:"debug"`
}

// ZoneSpec places a zone prefab, optionally overriding its fields.
type ZoneSpec struct {
	Prefab string            `yaml:"prefab"`
	Zone   ZoneComponentSpec `yaml:"zone"`
}

// DebugSpec configures the top-down debug view.
type DebugSpec struct {
	PixelsPerUnit float64    `yaml:"pixels_per_unit"`
	Background    *YAMLColor `yaml:"background"`
	Avatar        *YAMLColor `yaml:"avatar"`
	Zone          *YAMLColor `yaml:"zone"`
	Camera        *YAMLColor `yaml:"camera"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
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

// Or returns the parsed color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
