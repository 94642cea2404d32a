package entity

import (
	"fmt"

	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/prefabs"
)

// Scene holds the entities a scene spec produced.
type Scene struct {
	Player ecs.Entity
	Camera ecs.Entity
	Zones  []ecs.Entity
}

func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: spec is nil")
	}

	player, err := NewPlayer(w, spec.Avatar)
	if err != nil {
		return nil, fmt.Errorf("scene: player: %w", err)
	}
	camera, err := NewCamera(w, spec.Camera)
	if err != nil {
		return nil, fmt.Errorf("scene: camera: %w", err)
	}

	scene := &Scene{Player: player, Camera: camera}
	for i, z := range spec.Zones {
		e, err := NewZone(w, z)
		if err != nil {
			return nil, fmt.Errorf("scene: zone %d: %w", i, err)
		}
		scene.Zones = append(scene.Zones, e)
	}
	return scene, nil
}
