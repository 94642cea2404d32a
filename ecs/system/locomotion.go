package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/anim"
	"github.com/milk9111/voxelwalk/common"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

// DefaultWalkDirection is used when the camera gives no usable heading.
var DefaultWalkDirection = mgl64.Vec3{0, 0, 1}

// TargetState picks the locomotion state for the held keys.
func TargetState(p component.PressedDirections, toggleRun bool) anim.State {
	switch {
	case p.Any() && toggleRun:
		return anim.StateRun
	case p.Any():
		return anim.StateWalk
	default:
		return anim.StateIdle
	}
}

// DirectionOffset is the yaw, in radians, applied to the camera heading for
// the held keys. Forward wins over backward.
func DirectionOffset(p component.PressedDirections) float64 {
	switch {
	case p.Forward && p.Left:
		return math.Pi / 4
	case p.Forward && p.Right:
		return -math.Pi / 4
	case p.Forward:
		return 0
	case p.Backward && p.Left:
		return math.Pi/4 + math.Pi/2
	case p.Backward && p.Right:
		return -math.Pi/4 - math.Pi/2
	case p.Backward:
		return math.Pi
	case p.Left:
		return math.Pi / 2
	case p.Right:
		return -math.Pi / 2
	}
	return 0
}

// LocomotionSystem turns the player's pressed keys into a state, a facing
// and a camera-relative displacement once per tick.
type LocomotionSystem struct {
	player ecs.Entity
}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

// PositionRef exposes the player position to systems that only read it.
func (s *LocomotionSystem) PositionRef(w *ecs.World) PositionRef {
	return PositionRef{w: w, sys: s}
}

func (s *LocomotionSystem) resolvePlayer(w *ecs.World) ecs.Entity {
	if w.IsAlive(s.player) {
		return s.player
	}
	s.player = 0
	for _, e := range w.Query(component.LocomotionComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind()) {
		s.player = e
		break
	}
	return s.player
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	if !s.resolvePlayer(w).Valid() {
		return
	}

	in, ok := ecs.Get(w, s.player, component.InputComponent.Kind())
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, s.player, component.LocomotionComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, s.player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if in.RunToggled {
		loco.ToggleRun = !loco.ToggleRun
		in.RunToggled = false
	}

	pressed := in.Pressed
	if next := TargetState(pressed, loco.ToggleRun); next != loco.State {
		if a, ok := ecs.Get(w, s.player, component.AnimationComponent.Kind()); ok && a.Layer != nil {
			a.Layer.CrossfadeTo(next)
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventAnimationState,
			Data: ecs.AnimationStateEvent{Entity: s.player, From: string(loco.State), To: string(next)},
		})
		loco.State = next
	}

	if loco.State != anim.StateWalk && loco.State != anim.StateRun {
		return
	}

	camEntity, ok := ecs.First(w, component.OrbitCameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEntity, component.OrbitCameraComponent.Kind())
	if !ok {
		return
	}

	offset := DirectionOffset(pressed)
	pos := transform.Position

	// Facing and rotation step are per frame, not scaled by dt.
	angle := math.Atan2(cam.Position.X()-pos.X(), cam.Position.Z()-pos.Z())
	loco.Facing = common.RotateTowards(loco.Facing, common.Yaw(angle+offset), loco.RotateStep)
	transform.Rotation = loco.Facing

	heading, ok := common.Flatten(cam.Target.Sub(cam.Position))
	if !ok {
		heading = DefaultWalkDirection
	}
	loco.WalkDirection = common.Yaw(offset).Rotate(heading)

	velocity := loco.WalkVelocity
	if loco.State == anim.StateRun {
		velocity = loco.RunVelocity
	}
	dt := w.DeltaTime()
	moveX := loco.WalkDirection.X() * velocity * dt
	moveZ := loco.WalkDirection.Z() * velocity * dt

	if body, ok := ecs.Get(w, s.player, component.CharacterBodyComponent.Kind()); ok && !body.Ready() {
		return
	}

	transform.Position[0] += moveX
	transform.Position[2] += moveZ

	cam.Position[0] += moveX
	cam.Position[2] += moveZ
	lookAt := transform.Position.Add(mgl64.Vec3{0, loco.TargetHeight, 0})
	cam.Target = common.LerpVec3(cam.Target, lookAt, loco.TargetLerp)
}

// PositionRef reads the player position without granting write access
// to it.
type PositionRef struct {
	w   *ecs.World
	sys *LocomotionSystem
}

// Entity returns the referenced entity, zero when there is none.
func (r PositionRef) Entity() ecs.Entity {
	if r.w == nil || r.sys == nil {
		return 0
	}
	return r.sys.resolvePlayer(r.w)
}

// Position returns the entity position, or false when there is none.
func (r PositionRef) Position() (mgl64.Vec3, bool) {
	t, ok := ecs.Get(r.w, r.Entity(), component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, false
	}
	return t.Position, true
}
