package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/prefabs"
)

// NewZone builds the zone prefab of spec and applies its overrides.
func NewZone(w *ecs.World, spec prefabs.ZoneSpec) (ecs.Entity, error) {
	prefab := spec.Prefab
	if prefab == "" {
		prefab = "zone.yaml"
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}

	zone, ok := ecs.Get(w, e, component.ZoneComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("zone: prefab %q has no zone component", prefab)
	}
	if spec.Zone.Name != "" {
		zone.Name = spec.Zone.Name
	}
	if spec.Zone.Radius > 0 {
		zone.Radius = spec.Zone.Radius
	}
	if spec.Zone.Script != "" {
		zone.Script = spec.Zone.Script
	}
	if c := mgl64.Vec3(spec.Zone.Center); c != (mgl64.Vec3{}) {
		zone.Center = c
	}
	return e, nil
}
