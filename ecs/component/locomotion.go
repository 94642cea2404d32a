package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/anim"
)

// Locomotion is the controller state of a walking character.
type Locomotion struct {
	State         anim.State
	Facing        mgl64.Quat
	WalkDirection mgl64.Vec3
	ToggleRun     bool

	WalkVelocity float64
	RunVelocity  float64
	// RotateStep is the max facing change per frame, in radians.
	RotateStep float64
	// TargetLerp is the per-frame lerp factor of the orbit target.
	TargetLerp float64
	// TargetHeight lifts the orbit target above the character origin.
	TargetHeight float64
}

var LocomotionComponent = NewComponent[Locomotion]()
