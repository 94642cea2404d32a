package system

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/settings"
)

// VoxelSystem mirrors the voxels settings domain into solid entities. It
// only does work on ticks after the domain was published.
type VoxelSystem struct {
	store  *settings.Store
	cancel func()
	dirty  bool
	byID   map[string]ecs.Entity
}

func NewVoxelSystem(store *settings.Store) *VoxelSystem {
	s := &VoxelSystem{store: store, dirty: true, byID: make(map[string]ecs.Entity)}
	if store == nil {
		return s
	}
	cancel, err := store.Subscribe(settings.DomainVoxels, func(settings.Settings) {
		s.dirty = true
	})
	if err != nil {
		log.Printf("voxels: subscribe: %v", err)
		return s
	}
	s.cancel = cancel
	return s
}

// Close stops listening to the store.
func (s *VoxelSystem) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Entity returns the entity built for voxel id.
func (s *VoxelSystem) Entity(id string) (ecs.Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

func (s *VoxelSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.store == nil || !s.dirty {
		return
	}
	s.dirty = false

	items := s.store.Snapshot().Voxels.Items
	seen := make(map[string]struct{}, len(items))
	for _, v := range items {
		seen[v.ID] = struct{}{}
		e, ok := s.byID[v.ID]
		if !ok || !w.IsAlive(e) {
			e = ecs.CreateEntity(w)
			s.byID[v.ID] = e
			if err := ecs.Add(w, e, component.VoxelTagComponent.Kind(), &component.VoxelTag{}); err != nil {
				panic("voxel system: add tag: " + err.Error())
			}
		}
		if err := applyVoxel(w, e, v); err != nil {
			panic("voxel system: apply voxel: " + err.Error())
		}
	}

	for id, e := range s.byID {
		if _, ok := seen[id]; ok {
			continue
		}
		ecs.DestroyEntity(w, e)
		delete(s.byID, id)
	}
}

func applyVoxel(w *ecs.World, e ecs.Entity, v settings.Voxel) error {
	scale := v.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}

	if err := ecs.Add(w, e, component.VoxelComponent.Kind(), &component.Voxel{ID: v.ID, Color: v.Color}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: v.Position,
		Rotation: mgl64.AnglesToQuat(v.Rotation.X(), v.Rotation.Y(), v.Rotation.Z(), mgl64.XYZ),
		Scale:    1,
	}); err != nil {
		return err
	}

	body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
	if !ok {
		body = &component.CharacterBody{Static: true}
	}
	body.Width = scale.X()
	body.Height = scale.Y()
	body.Depth = scale.Z()
	return ecs.Add(w, e, component.CharacterBodyComponent.Kind(), body)
}
