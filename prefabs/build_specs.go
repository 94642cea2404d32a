package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name plus raw component blocks keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
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

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Scale float64 `yaml:"scale"`
}

type LocomotionComponentSpec struct {
	WalkVelocity float64 `yaml:"walk_velocity"`
	RunVelocity  float64 `yaml:"run_velocity"`
	RotateStep   float64 `yaml:"rotate_step"`
	TargetLerp   float64 `yaml:"target_lerp"`
	TargetHeight float64 `yaml:"target_height"`
	ToggleRun    bool    `yaml:"toggle_run"`
}

type AnimationClipSpec struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
}

type AnimationComponentSpec struct {
	Clips        []AnimationClipSpec `yaml:"clips"`
	FadeDuration float64             `yaml:"fade_duration"`
}

type CharacterBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Height float64 `yaml:"height"`
	Static bool    `yaml:"static"`
}

type OrbitCameraComponentSpec struct {
	Position     [3]float64 `yaml:"position,flow"`
	Target       [3]float64 `yaml:"target,flow"`
	MinPolar     float64    `yaml:"min_polar_deg"`
	MaxPolar     float64    `yaml:"max_polar_deg"`
	MinDistance  float64    `yaml:"min_distance"`
	MaxDistance  float64    `yaml:"max_distance"`
	EnablePan    bool       `yaml:"enable_pan"`
	EnableZoom   *bool      `yaml:"enable_zoom"`
	EnableRotate *bool      `yaml:"enable_rotate"`
	RotateSpeed  float64    `yaml:"rotate_speed"`
	ZoomSpeed    float64    `yaml:"zoom_speed"`
}

type CameraFollowComponentSpec struct {
	Enabled    bool    `yaml:"enabled"`
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	LookHeight float64 `yaml:"look_height"`
	Smoothing  float64 `yaml:"smoothing"`
}

type ZoneComponentSpec struct {
	Name   string     `yaml:"name"`
	Center [3]float64 `yaml:"center,flow"`
	Radius float64    `yaml:"radius"`
	Script string     `yaml:"script"`
}
