package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's world-space placement. Y is up.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
