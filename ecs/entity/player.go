package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/ecs"
)

func NewPlayer(w *ecs.World, prefab string) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "avatar.yaml"
	}
	return BuildEntity(w, prefab)
}

func NewPlayerAt(w *ecs.World, prefab string, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	e, err := NewPlayer(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return e, nil
}
