package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/anim"
	"github.com/milk9111/voxelwalk/common"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"camera_tag":     addCameraTag,
	"input":          addInput,
	"transform":      addTransform,
	"locomotion":     addLocomotion,
	"animation":      addAnimation,
	"character_body": addCharacterBody,
	"orbit_camera":   addOrbitCamera,
	"camera_follow":  addCameraFollow,
	"zone":           addZone,
}

// Locomotion reads the transform it starts facing from, so transform
// builds first.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"locomotion",
	"animation",
	"character_body",
	"orbit_camera",
	"camera_follow",
	"zone",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

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
			ecs.DestroyEntity(w, e)
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
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform moves e to pos facing yaw radians about up.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{Scale: 1}
	}
	t.Position = pos
	t.Rotation = common.Yaw(yaw)
	if loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind()); ok {
		loco.Facing = t.Rotation
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: common.Yaw(mgl64.DegToRad(spec.Yaw)),
		Scale:    scale,
	})
}

type locomotionSpec = prefabs.LocomotionComponentSpec

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}

	facing := mgl64.QuatIdent()
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		facing = t.Rotation
	}

	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{
		State:         anim.StateIdle,
		Facing:        facing,
		WalkDirection: mgl64.Vec3{0, 0, 1},
		ToggleRun:     spec.ToggleRun,
		WalkVelocity:  orDefault(spec.WalkVelocity, 1),
		RunVelocity:   orDefault(spec.RunVelocity, 2.5),
		RotateStep:    orDefault(spec.RotateStep, 0.2),
		TargetLerp:    orDefault(spec.TargetLerp, 0.2),
		TargetHeight:  orDefault(spec.TargetHeight, 1),
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	clips := make([]anim.Clip, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		if c.Name == "" {
			return fmt.Errorf("animation clip without a name")
		}
		clips = append(clips, anim.Clip{Name: c.Name, Duration: c.Duration})
	}

	mixer := anim.NewMixer()
	layer := anim.NewBlendLayer(mixer, anim.BuildClipMap(mixer, clips))
	if spec.FadeDuration > 0 {
		layer.FadeDuration = spec.FadeDuration
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Clips: clips,
		Mixer: mixer,
		Layer: layer,
	})
}

type characterBodySpec = prefabs.CharacterBodyComponentSpec

func addCharacterBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode character body spec: %w", err)
	}
	return ecs.Add(w, e, component.CharacterBodyComponent.Kind(), &component.CharacterBody{
		Width:  orDefault(spec.Width, 1),
		Depth:  orDefault(spec.Depth, 1),
		Height: orDefault(spec.Height, 2),
		Static: spec.Static,
	})
}

type orbitCameraSpec = prefabs.OrbitCameraComponentSpec

func addOrbitCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitCameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit camera spec: %w", err)
	}

	minPolar := math.Pi / 4
	if spec.MinPolar > 0 {
		minPolar = mgl64.DegToRad(spec.MinPolar)
	}
	maxPolar := math.Pi / 2
	if spec.MaxPolar > 0 {
		maxPolar = mgl64.DegToRad(spec.MaxPolar)
	}

	return ecs.Add(w, e, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{
		Position:     mgl64.Vec3(spec.Position),
		Target:       mgl64.Vec3(spec.Target),
		MinPolar:     minPolar,
		MaxPolar:     maxPolar,
		MinDistance:  spec.MinDistance,
		MaxDistance:  spec.MaxDistance,
		EnablePan:    spec.EnablePan,
		EnableZoom:   boolOr(spec.EnableZoom, true),
		EnableRotate: boolOr(spec.EnableRotate, true),
		RotateSpeed:  orDefault(spec.RotateSpeed, 0.005),
		ZoomSpeed:    orDefault(spec.ZoomSpeed, 1),
	})
}

type cameraFollowSpec = prefabs.CameraFollowComponentSpec

func addCameraFollow(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraFollowSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera follow spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraFollowComponent.Kind(), &component.CameraFollow{
		Enabled:    spec.Enabled,
		Distance:   orDefault(spec.Distance, 5),
		Height:     orDefault(spec.Height, 2),
		LookHeight: orDefault(spec.LookHeight, 1),
		Smoothing:  orDefault(spec.Smoothing, 0.05),
	})
}

type zoneSpec = prefabs.ZoneComponentSpec

func addZone(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[zoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode zone spec: %w", err)
	}
	name := spec.Name
	if name == "" {
		name = ctx.PrefabPath
	}
	return ecs.Add(w, e, component.ZoneComponent.Kind(), &component.Zone{
		Name:   name,
		Center: mgl64.Vec3(spec.Center),
		Radius: orDefault(spec.Radius, 1),
		Script: spec.Script,
	})
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
