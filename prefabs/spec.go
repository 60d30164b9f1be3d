package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SandboxSpec is the whole scene configuration: static geometry, the blob,
// and the rigid polygon bodies.
type SandboxSpec struct {
	Scene    SceneSpec     `yaml:"scene"`
	Blob     BlobSpec      `yaml:"blob"`
	Polygons []PolygonSpec `yaml:"polygons"`
}

type SceneSpec struct {
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	Platforms []PlatformSpec `yaml:"platforms"`
	Ramps     []RampSpec     `yaml:"ramps"`
}

type PlatformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// RampSpec is a static triangle given as three [x, y] world points.
type RampSpec struct {
	Points [][2]float64 `yaml:"points"`
}

type BlobSpec struct {
	Name      string    `yaml:"name"`
	SpawnX    float64   `yaml:"spawn_x"`
	SpawnY    float64   `yaml:"spawn_y"`
	Radius    float64   `yaml:"radius"`
	Segments  int       `yaml:"segments"`
	CoreMass  float64   `yaml:"core_mass"`
	NodeMass  float64   `yaml:"node_mass"`
	Stiffness float64   `yaml:"stiffness"`
	Damping   float64   `yaml:"damping"`
	Power     float64   `yaml:"power"`
	Script    string    `yaml:"script"`
	Fill      YAMLColor `yaml:"fill"`
}

type PolygonSpec struct {
	Name         string       `yaml:"name"`
	SpawnX       float64      `yaml:"spawn_x"`
	SpawnY       float64      `yaml:"spawn_y"`
	Points       [][2]float64 `yaml:"points"`
	Fill         YAMLColor    `yaml:"fill"`
	GravityScale float64      `yaml:"gravity_scale"`
	Bounce       float64      `yaml:"bounce"`
	Friction     float64      `yaml:"friction"`
	Mask         uint         `yaml:"mask"`
}

// LoadSpec loads and unmarshals a yaml prefab into T.
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

// YAMLColor decodes "#rrggbb" or "#rrggbbaa" hex strings.
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
