package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/anim"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

const epsilon = 1e-6

type scriptedSource struct {
	batches [][]RawEvent
}

func (s *scriptedSource) Poll() []RawEvent {
	if len(s.batches) == 0 {
		return nil
	}
	next := s.batches[0]
	s.batches = s.batches[1:]
	return next
}

type testScene struct {
	w      *ecs.World
	player ecs.Entity
	camera ecs.Entity
}

// newTestScene builds a player at the origin and an orbit camera at
// (0, 2, -5) looking at (0, 1, 0), so camera forward is +Z.
func newTestScene(t *testing.T) *testScene {
	t.Helper()

	w := ecs.NewWorld()
	w.SetDeltaTime(0.1)

	player := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{Rotation: mgl64.QuatIdent(), Scale: 1}))
	mustAdd(t, ecs.Add(w, player, component.LocomotionComponent.Kind(), &component.Locomotion{
		State:         anim.StateIdle,
		Facing:        mgl64.QuatIdent(),
		WalkDirection: DefaultWalkDirection,
		WalkVelocity:  1.0,
		RunVelocity:   2.5,
		RotateStep:    0.2,
		TargetLerp:    0.2,
		TargetHeight:  1.0,
	}))

	camera := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	mustAdd(t, ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 2, -5}, Rotation: mgl64.QuatIdent(), Scale: 1}))
	mustAdd(t, ecs.Add(w, camera, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{
		Position:     mgl64.Vec3{0, 2, -5},
		Target:       mgl64.Vec3{0, 1, 0},
		MinPolar:     math.Pi / 4,
		MaxPolar:     math.Pi / 2,
		MinDistance:  1.5,
		MaxDistance:  20,
		EnablePan:    false,
		EnableZoom:   true,
		EnableRotate: true,
		RotateSpeed:  0.005,
		ZoomSpeed:    1,
	}))
	mustAdd(t, ecs.Add(w, camera, component.CameraFollowComponent.Kind(), &component.CameraFollow{
		Distance:   5,
		Height:     2,
		LookHeight: 1,
		Smoothing:  0.05,
	}))

	return &testScene{w: w, player: player, camera: camera}
}

func (s *testScene) input(t *testing.T) *component.Input {
	t.Helper()
	in, ok := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("player has no input")
	}
	return in
}

func (s *testScene) locomotion(t *testing.T) *component.Locomotion {
	t.Helper()
	loco, ok := ecs.Get(s.w, s.player, component.LocomotionComponent.Kind())
	if !ok {
		t.Fatalf("player has no locomotion")
	}
	return loco
}

func (s *testScene) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, s.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("player has no transform")
	}
	return tr
}

func (s *testScene) orbit(t *testing.T) *component.OrbitCamera {
	t.Helper()
	cam, ok := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())
	if !ok {
		t.Fatalf("camera has no orbit component")
	}
	return cam
}

func (s *testScene) follow(t *testing.T) *component.CameraFollow {
	t.Helper()
	f, ok := ecs.Get(s.w, s.camera, component.CameraFollowComponent.Kind())
	if !ok {
		t.Fatalf("camera has no follow component")
	}
	return f
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < epsilon
}
