package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/common"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

// CameraSystem drives the orbit camera, or places it behind the player
// while follow mode is on.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.OrbitCameraComponent.Kind())
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity, _ = ecs.First(w, component.PlayerTagComponent.Kind())
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.OrbitCameraComponent.Kind())
	if !ok {
		return
	}
	follow, hasFollow := ecs.Get(w, cs.camEntity, component.CameraFollowComponent.Kind())

	in, hasInput := ecs.Get(w, cs.targetEntity, component.InputComponent.Kind())
	if hasInput && in.FollowToggled {
		in.FollowToggled = false
		if hasFollow {
			follow.Enabled = !follow.Enabled
			w.Events().Push(ecs.Event{Type: ecs.EventCameraFollow, Data: follow.Enabled})
		}
	}

	if hasFollow && follow.Enabled {
		if hasInput {
			in.OrbitYaw, in.OrbitPitch, in.Zoom = 0, 0, 0
		}
		cs.follow(w, cam, follow)
	} else {
		var yaw, pitch, zoom float64
		if hasInput {
			yaw, pitch, zoom = in.OrbitYaw, in.OrbitPitch, in.Zoom
			in.OrbitYaw, in.OrbitPitch, in.Zoom = 0, 0, 0
		}
		Orbit(cam, yaw, pitch, zoom)
	}

	if t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind()); ok {
		t.Position = cam.Position
	}
}

func (cs *CameraSystem) follow(w *ecs.World, cam *component.OrbitCamera, follow *component.CameraFollow) {
	t, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dir := DefaultWalkDirection
	if loco, ok := ecs.Get(w, cs.targetEntity, component.LocomotionComponent.Kind()); ok {
		if d, ok := common.Flatten(loco.WalkDirection); ok {
			dir = d
		}
	}

	desired := t.Position.Sub(dir.Mul(follow.Distance))
	desired[1] = t.Position.Y() + follow.Height
	// Per-frame smoothing, like the rotation step.
	cam.Position = common.LerpVec3(cam.Position, desired, follow.Smoothing)

	look := t.Position.Add(mgl64.Vec3{0, follow.LookHeight, 0})
	follow.Target = look
	cam.Target = look
}

// Orbit applies drag and wheel deltas to cam and re-applies its polar and
// distance limits. Deltas are dropped for disabled controls.
func Orbit(cam *component.OrbitCamera, yaw, pitch, zoom float64) {
	if cam == nil {
		return
	}

	offset := cam.Position.Sub(cam.Target)
	radius := offset.Len()
	if radius < 1e-9 {
		return
	}
	polar := math.Acos(common.Clamp(offset.Y()/radius, -1, 1))
	azimuth := math.Atan2(offset.X(), offset.Z())

	if cam.EnableRotate {
		azimuth -= yaw * cam.RotateSpeed
		polar -= pitch * cam.RotateSpeed
	}
	if cam.EnableZoom && zoom != 0 {
		radius *= math.Pow(0.95, zoom*cam.ZoomSpeed)
	}

	if cam.MaxPolar > cam.MinPolar {
		polar = common.Clamp(polar, cam.MinPolar, cam.MaxPolar)
	}
	if cam.MaxDistance > cam.MinDistance {
		radius = common.Clamp(radius, cam.MinDistance, cam.MaxDistance)
	}

	sinPolar := math.Sin(polar)
	cam.Position = cam.Target.Add(mgl64.Vec3{
		radius * sinPolar * math.Sin(azimuth),
		radius * math.Cos(polar),
		radius * sinPolar * math.Cos(azimuth),
	})
}
