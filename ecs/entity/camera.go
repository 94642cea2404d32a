package entity

import (
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

func NewCamera(w *ecs.World, prefab string) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "camera.yaml"
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if cam, ok := ecs.Get(w, e, component.OrbitCameraComponent.Kind()); ok {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = cam.Position
		}
	}
	return e, nil
}
